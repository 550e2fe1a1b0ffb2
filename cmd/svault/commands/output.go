package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"svault/internal/domain"
)

var (
	okFmt   = color.New(color.FgGreen).SprintFunc()
	warnFmt = color.New(color.FgYellow).SprintFunc()
	dimFmt  = color.New(color.Faint).SprintFunc()
)

const masked = "********"

// render writes v as JSON or YAML, or calls table for the default format.
func (c *cli) render(v any, table func(w *tabwriter.Writer)) error {
	switch c.output {
	case "json":
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = c.out.Write(out)
		return err
	default:
		w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
		table(w)
		return w.Flush()
	}
}

type entryRow struct {
	ID       domain.EntryID `json:"id" yaml:"id"`
	Title    string         `json:"title" yaml:"title"`
	Username string         `json:"username" yaml:"username"`
	URL      string         `json:"url" yaml:"url"`
	Category string         `json:"category" yaml:"category"`
	Modified time.Time      `json:"modified" yaml:"modified"`
}

type entryView struct {
	entryRow `yaml:",inline"`
	Password string           `json:"password,omitempty" yaml:"password,omitempty"`
	Notes    string           `json:"notes" yaml:"notes"`
	Created  time.Time        `json:"created" yaml:"created"`
	Strength *domain.Strength `json:"strength,omitempty" yaml:"strength,omitempty"`
}

func rowOf(e domain.Entry) entryRow {
	return entryRow{ID: e.ID, Title: e.Title, Username: e.Username, URL: e.URL, Category: e.Category, Modified: e.Modified}
}

func strengthText(s domain.Strength) string {
	label := fmt.Sprintf("%s (%d/4)", s.Label, s.Score)
	switch {
	case s.Score >= 3:
		return okFmt(label)
	case s.Score == 2:
		return warnFmt(label)
	default:
		return errFmt(label)
	}
}

func stamp(t time.Time) string { return t.Local().Format("2006-01-02 15:04") }

func fprintf(w io.Writer, format string, args ...any) { _, _ = fmt.Fprintf(w, format, args...) }
