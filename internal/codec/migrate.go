package codec

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"svault/internal/domain"
)

// legacyTimeLayouts are the timestamp shapes written by 1.x vaults, which
// stored naive local ISO strings.
var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type legacyEntry struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
}

type legacyPayload struct {
	Version    string        `json:"version"`
	Created    string        `json:"created"`
	Categories []string      `json:"categories"`
	Entries    []legacyEntry `json:"entries"`
}

// migrateV1 lifts a 1.x payload into the current model. Ids are reassigned
// 1..n in file order, missing categories fall back to the defaults and
// unparseable timestamps fall back to fallback.
func migrateV1(b []byte, fallback time.Time) (domain.Vault, error) {
	if err := validate(schemaV1, b); err != nil {
		return domain.Vault{}, err
	}
	var p legacyPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return domain.Vault{}, errors.Wrap(err, "decode legacy payload")
	}

	v := domain.Vault{
		Version:    CurrentVersion,
		Created:    parseLegacyTime(p.Created, fallback),
		Categories: []string{},
		Entries:    make([]domain.Entry, 0, len(p.Entries)),
	}
	seen := map[string]bool{}
	addCategory := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			v.Categories = append(v.Categories, name)
		}
	}
	cats := p.Categories
	if len(cats) == 0 {
		cats = domain.DefaultCategories()
	}
	for _, c := range cats {
		addCategory(c)
	}

	for i, le := range p.Entries {
		cat := le.Category
		if cat == "" {
			cat = domain.DefaultCategory
		}
		addCategory(cat)
		created := parseLegacyTime(le.Created, v.Created)
		e := domain.Entry{
			ID:       domain.EntryID(i + 1),
			Title:    le.Title,
			Username: le.Username,
			Password: le.Password,
			URL:      le.URL,
			Category: cat,
			Notes:    le.Notes,
			Created:  created,
			Modified: parseLegacyTime(le.Modified, created),
		}
		v.Entries = append(v.Entries, e)
	}
	if err := CheckInvariants(v); err != nil {
		return domain.Vault{}, err
	}
	return v, nil
}

func parseLegacyTime(s string, fallback time.Time) time.Time {
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return fallback.UTC()
}
