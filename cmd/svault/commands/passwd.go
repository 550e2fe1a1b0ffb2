package commands

import (
	"github.com/spf13/cobra"

	"svault/internal/crypto"
)

func (c *cli) passwdCmd() *cobra.Command {
	var newPassword string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the master password",
		Long: `Re-encrypt the vault under a new master password with a fresh salt and the
configured key derivation. The old password is required to unlock first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.open(cmd); err != nil {
				return err
			}
			pw := []byte(newPassword)
			if newPassword == "" {
				var err error
				if pw, err = c.newSecret("New master password: "); err != nil {
					return err
				}
			}
			defer crypto.Wipe(pw)
			if err := c.app.ChangePassword(cmd.Context(), pw); err != nil {
				return err
			}
			fprintf(c.out, "%s\n", okFmt("Master password changed"))
			return nil
		},
	}
	cmd.Flags().StringVar(&newPassword, "new-password", "", "new master password (prompted when omitted)")
	return cmd
}
