package commands

import (
	"github.com/spf13/cobra"

	"svault/internal/domain"
)

type generated struct {
	Password string          `json:"password" yaml:"password"`
	Strength domain.Strength `json:"strength" yaml:"strength"`
}

func (c *cli) generateCmd() *cobra.Command {
	var (
		length                                int
		noUpper, noLower, noDigits, noSymbols bool
		excludeAmbiguous, copyIt              bool
	)
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a random password",
		Long: `Generate a password from the configured policy. Flags narrow the policy
for this run. --copy puts the result on the clipboard instead of printing
it and clears it after the configured delay.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.app.Config().Generator
			fl := cmd.Flags()
			if fl.Changed("length") {
				p.Length = length
			}
			p.Upper = p.Upper && !noUpper
			p.Lower = p.Lower && !noLower
			p.Digits = p.Digits && !noDigits
			p.Symbols = p.Symbols && !noSymbols
			p.ExcludeAmbiguous = p.ExcludeAmbiguous || excludeAmbiguous

			pw, err := c.app.GeneratePassword(p)
			if err != nil {
				return err
			}
			out := generated{Password: pw, Strength: c.app.Strength(pw)}
			if copyIt {
				if err := c.app.CopyToClipboard(pw); err != nil {
					return err
				}
				fprintf(c.out, "Strength: %s\n", strengthText(out.Strength))
				return c.holdClipboard(cmd)
			}
			if c.output != "table" {
				return c.render(out, nil)
			}
			fprintf(c.out, "%s\n", pw)
			fprintf(c.errOut, "Strength: %s\n", strengthText(out.Strength))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.IntVarP(&length, "length", "l", 16, "password length")
	fl.BoolVar(&noUpper, "no-upper", false, "leave out upper-case letters")
	fl.BoolVar(&noLower, "no-lower", false, "leave out lower-case letters")
	fl.BoolVar(&noDigits, "no-digits", false, "leave out digits")
	fl.BoolVar(&noSymbols, "no-symbols", false, "leave out symbols")
	fl.BoolVar(&excludeAmbiguous, "exclude-ambiguous", false, "leave out look-alike characters such as 0/O and 1/l")
	fl.BoolVar(&copyIt, "copy", false, "copy to the clipboard instead of printing")
	return cmd
}
