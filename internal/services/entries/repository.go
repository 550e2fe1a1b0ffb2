package entries

import (
	"sort"
	"strings"
	"time"

	"svault/internal/domain"
)

// Backend runs callbacks against the authoritative vault under its owner's
// lock. Read holds a shared lock; Write holds an exclusive one and marks the
// vault dirty when fn reports a change.
type Backend interface {
	Read(fn func(v *domain.Vault) error) error
	Write(fn func(v *domain.Vault) (changed bool, err error)) error
}

// Repository is the entry and category CRUD surface of one unlocked session.
type Repository struct {
	b   Backend
	now func() time.Time

	// Guarded by the backend's lock.
	index  map[domain.EntryID]string
	nextID domain.EntryID
}

// New returns a repository over b, indexing v. The caller must hold the
// backend's exclusive lock or otherwise own v for the duration of the call.
func New(b Backend, v *domain.Vault, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	r := &Repository{b: b, now: now, index: make(map[domain.EntryID]string, len(v.Entries)), nextID: 1}
	for _, e := range v.Entries {
		r.index[e.ID] = haystack(e)
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
	}
	return r
}

// Release drops the search index. Called by the owner, under its lock, when
// the session locks.
func (r *Repository) Release() {
	r.index = nil
}

func haystack(e domain.Entry) string {
	return strings.ToLower(e.Title + "\x00" + e.Username + "\x00" + e.URL)
}

func (r *Repository) stamp() time.Time { return r.now().UTC() }

// Add stores e under a fresh id and returns it. An empty category means
// DefaultCategory.
func (r *Repository) Add(e domain.Entry) (domain.EntryID, error) {
	const op = "add entry"
	if strings.TrimSpace(e.Title) == "" {
		return 0, domain.Errorf(domain.KindValidation, op, "title is required")
	}
	if e.Category == "" {
		e.Category = domain.DefaultCategory
	}
	var id domain.EntryID
	err := r.b.Write(func(v *domain.Vault) (bool, error) {
		if indexOf(v.Categories, e.Category) < 0 {
			return false, domain.Errorf(domain.KindValidation, op, "unknown category %q", e.Category)
		}
		e.ID = r.nextID
		r.nextID++
		now := r.stamp()
		e.Created, e.Modified = now, now
		v.Entries = append(v.Entries, e)
		r.index[e.ID] = haystack(e)
		id = e.ID
		return true, nil
	})
	return id, err
}

// Get returns a copy of the entry with the given id.
func (r *Repository) Get(id domain.EntryID) (domain.Entry, error) {
	var out domain.Entry
	err := r.b.Read(func(v *domain.Vault) error {
		i := entryIndex(v, id)
		if i < 0 {
			return notFound("get entry", id)
		}
		out = v.Entries[i]
		return nil
	})
	return out, err
}

// Update applies the non-nil fields of upd. An empty update changes nothing
// and leaves the vault clean.
func (r *Repository) Update(id domain.EntryID, upd domain.EntryUpdate) error {
	const op = "update entry"
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return domain.Errorf(domain.KindValidation, op, "title is required")
	}
	return r.b.Write(func(v *domain.Vault) (bool, error) {
		i := entryIndex(v, id)
		if i < 0 {
			return false, notFound(op, id)
		}
		if upd.IsZero() {
			return false, nil
		}
		if upd.Category != nil && indexOf(v.Categories, *upd.Category) < 0 {
			return false, domain.Errorf(domain.KindValidation, op, "unknown category %q", *upd.Category)
		}
		e := &v.Entries[i]
		set(&e.Title, upd.Title)
		set(&e.Username, upd.Username)
		set(&e.Password, upd.Password)
		set(&e.URL, upd.URL)
		set(&e.Category, upd.Category)
		set(&e.Notes, upd.Notes)
		e.Modified = r.stamp()
		r.index[id] = haystack(*e)
		return true, nil
	})
}

func set(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Remove deletes the entry. Its id is never handed out again in this session.
func (r *Repository) Remove(id domain.EntryID) error {
	return r.b.Write(func(v *domain.Vault) (bool, error) {
		i := entryIndex(v, id)
		if i < 0 {
			return false, notFound("remove entry", id)
		}
		v.Entries[i] = domain.Entry{}
		v.Entries = append(v.Entries[:i], v.Entries[i+1:]...)
		delete(r.index, id)
		return true, nil
	})
}

// List returns the entries matching f ordered by id. The result is never nil.
func (r *Repository) List(f domain.EntryFilter) ([]domain.Entry, error) {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := []domain.Entry{}
	err := r.b.Read(func(v *domain.Vault) error {
		for _, e := range v.Entries {
			if f.Category != "" && e.Category != f.Category {
				continue
			}
			if needle != "" && !strings.Contains(r.index[e.ID], needle) {
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func entryIndex(v *domain.Vault, id domain.EntryID) int {
	for i := range v.Entries {
		if v.Entries[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(op string, id domain.EntryID) error {
	return domain.Errorf(domain.KindNotFound, op, "no entry with id %d", id)
}

// Compile-time assertion that Repository implements domain.EntryRepository.
var _ domain.EntryRepository = (*Repository)(nil)
