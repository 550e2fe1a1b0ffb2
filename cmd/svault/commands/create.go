package commands

import (
	"github.com/spf13/cobra"

	"svault/internal/crypto"
)

func (c *cli) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new vault",
		Long: `Create a new vault at --vault (or the configured default) sealed with a
master password. The file must not already exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := []byte(c.password)
			if c.password == "" {
				var err error
				if pw, err = c.newSecret("New master password: "); err != nil {
					return err
				}
			}
			defer crypto.Wipe(pw)

			if err := c.app.Create(cmd.Context(), c.vaultFile(), pw); err != nil {
				return err
			}
			fprintf(c.out, "%s %s\n", okFmt("Vault created:"), c.app.Path())
			return nil
		},
	}
}
