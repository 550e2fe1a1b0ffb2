package types

import "time"

// DefaultCategories seeds every newly created vault.
var DefaultCategories = []string{"General", "Social Media", "Email", "Banking", "Work"}

// DefaultCategory is assigned to entries that arrive without one.
const DefaultCategory = "General"

// Entry is one credential record.
type Entry struct {
	ID       EntryID   `json:"id"`
	Title    string    `json:"title"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	URL      string    `json:"url"`
	Category string    `json:"category"`
	Notes    string    `json:"notes"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// Vault is the decrypted logical content of a container.
type Vault struct {
	Version    string    `json:"version"`
	Created    time.Time `json:"created"`
	Categories []string  `json:"categories"`
	Entries    []Entry   `json:"entries"`
}

// Clone returns a deep copy that shares no slices with v.
func (v Vault) Clone() Vault {
	out := v
	out.Categories = append([]string(nil), v.Categories...)
	out.Entries = append([]Entry(nil), v.Entries...)
	return out
}

// EntryUpdate carries the fields to change; nil fields are left untouched.
type EntryUpdate struct {
	Title    *string
	Username *string
	Password *string
	URL      *string
	Category *string
	Notes    *string
}

// IsZero reports whether the update changes nothing.
func (u EntryUpdate) IsZero() bool {
	return u.Title == nil && u.Username == nil && u.Password == nil &&
		u.URL == nil && u.Category == nil && u.Notes == nil
}

// EntryFilter narrows List results. Empty fields match everything.
type EntryFilter struct {
	Category string
	Search   string
}
