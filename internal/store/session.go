package store

import "svault/internal/domain"

// session is the entries.Backend of one unlock epoch. Once the store locks
// or closes, every call fails.
type session struct {
	s     *Store
	epoch uint64
}

func (v session) check() error {
	if err := v.s.requireUnlocked(); err != nil {
		return err
	}
	if v.s.epoch != v.epoch {
		return domain.ErrLocked
	}
	return nil
}

func (v session) Read(fn func(*domain.Vault) error) error {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	if err := v.check(); err != nil {
		return err
	}
	return fn(&v.s.vault)
}

func (v session) Write(fn func(*domain.Vault) (bool, error)) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.check(); err != nil {
		return err
	}
	changed, err := fn(&v.s.vault)
	if changed {
		v.s.gen++
	}
	return err
}
