package commands

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"svault/internal/domain"
)

func (c *cli) categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "List, add, rename or remove categories",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories with their entry counts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.open(cmd); err != nil {
					return err
				}
				return c.listCategories()
			},
		},
		c.categoryMutation("add <name>", "Add a category", 1, func(r domain.EntryRepository, args []string) error {
			return r.AddCategory(args[0])
		}),
		c.categoryMutation("rename <from> <to>", "Rename a category and move its entries", 2, func(r domain.EntryRepository, args []string) error {
			return r.RenameCategory(args[0], args[1])
		}),
		c.categoryMutation("rm <name>", "Remove an unused category", 1, func(r domain.EntryRepository, args []string) error {
			return r.RemoveCategory(args[0])
		}),
	)
	return cmd
}

type categoryRow struct {
	Name    string `json:"name" yaml:"name"`
	Entries int    `json:"entries" yaml:"entries"`
}

func (c *cli) listCategories() error {
	repo := c.app.Entries()
	names, err := repo.Categories()
	if err != nil {
		return err
	}
	entries, err := repo.List(domain.EntryFilter{})
	if err != nil {
		return err
	}
	counts := make(map[string]int, len(names))
	for _, e := range entries {
		counts[e.Category]++
	}
	rows := make([]categoryRow, 0, len(names))
	for _, n := range names {
		rows = append(rows, categoryRow{Name: n, Entries: counts[n]})
	}
	return c.render(rows, func(w *tabwriter.Writer) {
		fprintf(w, "CATEGORY\tENTRIES\n")
		for _, r := range rows {
			fprintf(w, "%s\t%d\n", r.Name, r.Entries)
		}
	})
}

func (c *cli) categoryMutation(use, short string, nargs int, fn func(domain.EntryRepository, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.open(cmd); err != nil {
				return err
			}
			if err := fn(c.app.Entries(), args); err != nil {
				return err
			}
			if err := c.app.Save(cmd.Context()); err != nil {
				return err
			}
			return c.listCategories()
		},
	}
}
