package commands

import (
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"svault/internal/domain"
)

func parseID(s string) (domain.EntryID, error) {
	id, err := domain.ParseEntryID(s)
	if err != nil || id < 1 {
		return 0, domain.Errorf(domain.KindValidation, "entry", "invalid id %q", s)
	}
	return id, nil
}

func (c *cli) listCmd() *cobra.Command {
	var filter domain.EntryFilter
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries",
		Long: `List entries sorted by id. --category keeps one category; --search keeps
entries whose title, username or URL contains the text, ignoring case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.open(cmd); err != nil {
				return err
			}
			entries, err := c.app.Entries().List(filter)
			if err != nil {
				return err
			}
			rows := make([]entryRow, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, rowOf(e))
			}
			return c.render(rows, func(w *tabwriter.Writer) {
				fprintf(w, "ID\tTITLE\tUSERNAME\tCATEGORY\tURL\tMODIFIED\n")
				for _, r := range rows {
					fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Username, r.Category, r.URL, stamp(r.Modified))
				}
			})
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "only entries in this category")
	cmd.Flags().StringVar(&filter.Search, "search", "", "case-insensitive text to look for")
	return cmd
}

type entryFlags struct {
	title    string
	username string
	secret   string
	url      string
	category string
	notes    string
	generate bool
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "entry title")
	fl.StringVar(&f.username, "username", "", "user name")
	fl.StringVar(&f.secret, "secret", "", "entry password (prompted when omitted)")
	fl.StringVar(&f.url, "url", "", "site URL")
	fl.StringVar(&f.category, "category", "", "category (default General)")
	fl.StringVar(&f.notes, "notes", "", "free-form notes")
	fl.BoolVar(&f.generate, "generate", false, "generate the entry password with the configured policy")
	cmd.MarkFlagsMutuallyExclusive("secret", "generate")
}

// entrySecret resolves the entry password from --secret, --generate or a prompt.
func (c *cli) entrySecret(f *entryFlags) (string, error) {
	switch {
	case f.generate:
		return c.app.GeneratePassword(c.app.Config().Generator)
	case f.secret != "":
		return f.secret, nil
	default:
		b, err := c.readSecret("Entry password: ")
		return string(b), err
	}
}

func (c *cli) addCmd() *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(f.title) == "" {
				return domain.Errorf(domain.KindValidation, "add", "--title is required")
			}
			if err := c.open(cmd); err != nil {
				return err
			}
			secret, err := c.entrySecret(&f)
			if err != nil {
				return err
			}
			id, err := c.app.Entries().Add(domain.Entry{
				Title:    f.title,
				Username: f.username,
				Password: secret,
				URL:      f.url,
				Category: f.category,
				Notes:    f.notes,
			})
			if err != nil {
				return err
			}
			if err := c.app.Save(cmd.Context()); err != nil {
				return err
			}
			fprintf(c.out, "%s %d\n", okFmt("Added entry"), id)
			if f.generate {
				fprintf(c.out, "Strength: %s\n", strengthText(c.app.Strength(secret)))
			}
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one entry",
		Long:  `Print one entry. The password is masked unless --reveal is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.open(cmd); err != nil {
				return err
			}
			e, err := c.app.Entries().Get(id)
			if err != nil {
				return err
			}
			st := c.app.Strength(e.Password)
			v := entryView{entryRow: rowOf(e), Notes: e.Notes, Created: e.Created, Strength: &st}
			pw := masked
			if reveal {
				v.Password = e.Password
				pw = e.Password
			}
			return c.render(v, func(w *tabwriter.Writer) {
				fprintf(w, "ID:\t%d\n", v.ID)
				fprintf(w, "Title:\t%s\n", v.Title)
				fprintf(w, "Username:\t%s\n", v.Username)
				fprintf(w, "Password:\t%s\n", pw)
				fprintf(w, "Strength:\t%s\n", strengthText(st))
				fprintf(w, "URL:\t%s\n", v.URL)
				fprintf(w, "Category:\t%s\n", v.Category)
				fprintf(w, "Notes:\t%s\n", v.Notes)
				fprintf(w, "Created:\t%s\n", stamp(v.Created))
				fprintf(w, "Modified:\t%s\n", stamp(v.Modified))
			})
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the password in clear")
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an entry",
		Long:  `Change the fields named by flags. Fields without a flag keep their value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.open(cmd); err != nil {
				return err
			}
			fl := cmd.Flags()
			var upd domain.EntryUpdate
			set := func(name string, v *string, dst **string) {
				if fl.Changed(name) {
					*dst = v
				}
			}
			set("title", &f.title, &upd.Title)
			set("username", &f.username, &upd.Username)
			set("secret", &f.secret, &upd.Password)
			set("url", &f.url, &upd.URL)
			set("category", &f.category, &upd.Category)
			set("notes", &f.notes, &upd.Notes)
			if f.generate {
				pw, err := c.app.GeneratePassword(c.app.Config().Generator)
				if err != nil {
					return err
				}
				upd.Password = &pw
			}
			if upd.IsZero() {
				fprintf(c.out, "%s\n", dimFmt("Nothing to change"))
				return nil
			}
			if err := c.app.Entries().Update(id, upd); err != nil {
				return err
			}
			if err := c.app.Save(cmd.Context()); err != nil {
				return err
			}
			fprintf(c.out, "%s %d\n", okFmt("Updated entry"), id)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.open(cmd); err != nil {
				return err
			}
			if err := c.app.Entries().Remove(id); err != nil {
				return err
			}
			if err := c.app.Save(cmd.Context()); err != nil {
				return err
			}
			fprintf(c.out, "%s %d\n", okFmt("Removed entry"), id)
			return nil
		},
	}
}
