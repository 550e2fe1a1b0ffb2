package entries

import (
	"strings"

	"svault/internal/domain"
)

// Categories returns the category names in their stored order.
func (r *Repository) Categories() ([]string, error) {
	var out []string
	err := r.b.Read(func(v *domain.Vault) error {
		out = append([]string{}, v.Categories...)
		return nil
	})
	return out, err
}

// AddCategory appends a new, unique, non-blank category.
func (r *Repository) AddCategory(name string) error {
	const op = "add category"
	if strings.TrimSpace(name) == "" {
		return domain.Errorf(domain.KindValidation, op, "category name is required")
	}
	return r.b.Write(func(v *domain.Vault) (bool, error) {
		if indexOf(v.Categories, name) >= 0 {
			return false, domain.Errorf(domain.KindValidation, op, "category %q already exists", name)
		}
		v.Categories = append(v.Categories, name)
		return true, nil
	})
}

// RenameCategory renames from to to, moving every entry with it. Renaming
// onto an existing category is rejected rather than merged.
func (r *Repository) RenameCategory(from, to string) error {
	const op = "rename category"
	if strings.TrimSpace(to) == "" {
		return domain.Errorf(domain.KindValidation, op, "category name is required")
	}
	return r.b.Write(func(v *domain.Vault) (bool, error) {
		i := indexOf(v.Categories, from)
		if i < 0 {
			return false, domain.Errorf(domain.KindNotFound, op, "no category %q", from)
		}
		if from == to {
			return false, nil
		}
		if indexOf(v.Categories, to) >= 0 {
			return false, domain.Errorf(domain.KindValidation, op, "category %q already exists", to)
		}
		v.Categories[i] = to
		now := r.stamp()
		for j := range v.Entries {
			if v.Entries[j].Category == from {
				v.Entries[j].Category = to
				v.Entries[j].Modified = now
			}
		}
		return true, nil
	})
}

// RemoveCategory deletes an unused category.
func (r *Repository) RemoveCategory(name string) error {
	const op = "remove category"
	return r.b.Write(func(v *domain.Vault) (bool, error) {
		i := indexOf(v.Categories, name)
		if i < 0 {
			return false, domain.Errorf(domain.KindNotFound, op, "no category %q", name)
		}
		n := 0
		for _, e := range v.Entries {
			if e.Category == name {
				n++
			}
		}
		if n > 0 {
			return false, domain.Errorf(domain.KindValidation, op, "category %q is used by %d entries", name, n)
		}
		v.Categories = append(v.Categories[:i], v.Categories[i+1:]...)
		return true, nil
	})
}

func indexOf(list []string, s string) int {
	for i, x := range list {
		if x == s {
			return i
		}
	}
	return -1
}
