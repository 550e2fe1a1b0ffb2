package codec

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/pkg/errors"

	"svault/internal/domain"
)

type payload struct {
	Version    string         `json:"version"`
	Created    time.Time      `json:"created"`
	Categories []string       `json:"categories"`
	Entries    []domain.Entry `json:"entries"`
}

// Serialize encodes v canonically: UTC timestamps, entries ordered by id,
// categories in their stored order.
func Serialize(v domain.Vault) ([]byte, error) {
	p := payload{
		Version:    v.Version,
		Created:    v.Created.UTC(),
		Categories: append([]string{}, v.Categories...),
		Entries:    make([]domain.Entry, len(v.Entries)),
	}
	if p.Version == "" {
		p.Version = CurrentVersion
	}
	for i, e := range v.Entries {
		e.Created = e.Created.UTC()
		e.Modified = e.Modified.UTC()
		p.Entries[i] = e
	}
	sort.SliceStable(p.Entries, func(i, j int) bool { return p.Entries[i].ID < p.Entries[j].ID })
	b, err := json.Marshal(p)
	if err != nil {
		return nil, domain.E(domain.KindFormat, "serialize", err)
	}
	return b, nil
}

// Deserialize decodes and validates a current-format payload.
func Deserialize(b []byte) (domain.Vault, error) {
	const op = "deserialize"
	if err := validate(schemaV2, b); err != nil {
		return domain.Vault{}, domain.E(domain.KindFormat, op, err)
	}
	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return domain.Vault{}, domain.E(domain.KindFormat, op, errors.Wrap(err, "decode payload"))
	}
	v := domain.Vault{
		Version:    p.Version,
		Created:    p.Created,
		Categories: p.Categories,
		Entries:    p.Entries,
	}
	if v.Categories == nil {
		v.Categories = []string{}
	}
	if v.Entries == nil {
		v.Entries = []domain.Entry{}
	}
	if err := CheckInvariants(v); err != nil {
		return domain.Vault{}, domain.E(domain.KindFormat, op, err)
	}
	return v, nil
}

// CheckInvariants verifies unique ids, unique categories and that every entry
// references a known category.
func CheckInvariants(v domain.Vault) error {
	cats := make(map[string]struct{}, len(v.Categories))
	for _, c := range v.Categories {
		if c == "" {
			return errors.New("empty category name")
		}
		if _, dup := cats[c]; dup {
			return errors.Errorf("duplicate category %q", c)
		}
		cats[c] = struct{}{}
	}
	ids := make(map[domain.EntryID]struct{}, len(v.Entries))
	for _, e := range v.Entries {
		if e.ID < 1 {
			return errors.Errorf("invalid entry id %d", e.ID)
		}
		if _, dup := ids[e.ID]; dup {
			return errors.Errorf("duplicate entry id %d", e.ID)
		}
		ids[e.ID] = struct{}{}
		if _, ok := cats[e.Category]; !ok {
			return errors.Errorf("entry %d references unknown category %q", e.ID, e.Category)
		}
	}
	return nil
}
