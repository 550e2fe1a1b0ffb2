package commands

import (
	"time"

	"github.com/spf13/cobra"

	"svault/internal/app"
)

func (c *cli) copyCmd() *cobra.Command {
	var (
		field string
		keep  bool
	)
	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy an entry field to the clipboard",
		Long: `Copy the password (or --field username|url) of an entry to the clipboard.
The command waits until the configured delay has passed and then clears the
clipboard, unless something else has been copied in the meantime. Interrupt
to clear early. --keep leaves the value on the clipboard and returns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.open(cmd); err != nil {
				return err
			}
			if err := c.app.CopyEntryField(id, field); err != nil {
				return err
			}
			if keep {
				c.app.CancelClipboardClear()
				fprintf(c.out, "%s %s of entry %d\n", okFmt("Copied"), field, id)
				return nil
			}
			return c.holdClipboard(cmd)
		},
	}
	cmd.Flags().StringVar(&field, "field", app.FieldPassword, "field to copy: password, username, url")
	cmd.Flags().BoolVar(&keep, "keep", false, "do not clear the clipboard")
	return cmd
}

// holdClipboard blocks until the scheduled clear has run or the command is
// interrupted. Closing the app clears a value still owned either way.
func (c *cli) holdClipboard(cmd *cobra.Command) error {
	d := c.app.ClipboardDelay()
	fprintf(c.out, "%s, clearing in %s\n", okFmt("Copied to clipboard"), d)
	t := time.NewTimer(d + 50*time.Millisecond)
	defer t.Stop()
	select {
	case <-t.C:
		fprintf(c.out, "%s\n", dimFmt("Clipboard cleared"))
	case <-cmd.Context().Done():
	}
	return nil
}
