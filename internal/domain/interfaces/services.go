package interfaces

import (
	"context"

	domaintypes "svault/internal/domain/types"
)

// EntryRepository is the mutable view over an unlocked vault.
type EntryRepository interface {
	Add(entry domaintypes.Entry) (domaintypes.EntryID, error)
	Get(id domaintypes.EntryID) (domaintypes.Entry, error)
	Update(id domaintypes.EntryID, upd domaintypes.EntryUpdate) error
	Remove(id domaintypes.EntryID) error
	List(filter domaintypes.EntryFilter) ([]domaintypes.Entry, error)

	Categories() ([]string, error)
	AddCategory(name string) error
	RenameCategory(from, to string) error
	RemoveCategory(name string) error
}

// PasswordGenerator synthesizes random passwords.
type PasswordGenerator interface {
	Generate(policy domaintypes.GeneratorPolicy) (string, error)
}

// VaultSession is the file-level lifecycle of one vault.
type VaultSession interface {
	Save(ctx context.Context) error
	Lock(ctx context.Context) error
	Unlock(ctx context.Context, password []byte) error
	Close() error
	IsDirty() bool
	State() domaintypes.State
	Path() string
	Header() domaintypes.Container
	Entries() EntryRepository
}
