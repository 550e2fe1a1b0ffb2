package commands

import (
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"svault/internal/crypto"
	"svault/internal/domain"
)

type vaultInfo struct {
	Path        string    `json:"path" yaml:"path"`
	ID          string    `json:"id" yaml:"id"`
	Version     string    `json:"version" yaml:"version"`
	Created     time.Time `json:"created" yaml:"created"`
	KDF         string    `json:"kdf" yaml:"kdf"`
	Iterations  uint32    `json:"iterations" yaml:"iterations"`
	Fingerprint string    `json:"fingerprint" yaml:"fingerprint"`
	Entries     int       `json:"entries" yaml:"entries"`
	Categories  int       `json:"categories" yaml:"categories"`
}

func (c *cli) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the vault header and fingerprint",
		Long: `Unlock the vault and print its header fields along with a short
fingerprint of the vault id and salt. Two files with the same fingerprint
are copies of the same vault.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.open(cmd); err != nil {
				return err
			}
			h := c.app.Header()
			entries, err := c.app.Entries().List(domain.EntryFilter{})
			if err != nil {
				return err
			}
			cats, err := c.app.Entries().Categories()
			if err != nil {
				return err
			}
			info := vaultInfo{
				Path:        c.app.Path(),
				ID:          h.ID,
				Version:     h.Version,
				Created:     h.Created,
				KDF:         h.KDF.Algorithm,
				Iterations:  h.KDF.Iterations,
				Fingerprint: crypto.Fingerprint(h.ID, h.Salt),
				Entries:     len(entries),
				Categories:  len(cats),
			}
			return c.render(info, func(w *tabwriter.Writer) {
				fprintf(w, "Path:\t%s\n", info.Path)
				fprintf(w, "ID:\t%s\n", info.ID)
				fprintf(w, "Version:\t%s\n", info.Version)
				fprintf(w, "Created:\t%s\n", stamp(info.Created))
				fprintf(w, "KDF:\t%s (%d)\n", info.KDF, info.Iterations)
				fprintf(w, "Fingerprint:\t%s\n", info.Fingerprint)
				fprintf(w, "Entries:\t%d\n", info.Entries)
				fprintf(w, "Categories:\t%d\n", info.Categories)
			})
		},
	}
}
