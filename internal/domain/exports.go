package domain

import (
	interfaces "svault/internal/domain/interfaces"
	types "svault/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	EntryID         = types.EntryID
	Entry           = types.Entry
	Vault           = types.Vault
	EntryUpdate     = types.EntryUpdate
	EntryFilter     = types.EntryFilter
	Container       = types.Container
	KDFParams       = types.KDFParams
	GeneratorPolicy = types.GeneratorPolicy
	Strength        = types.Strength
	State           = types.State
	LockPolicy      = types.LockPolicy
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Clipboard         = interfaces.Clipboard
	EntryRepository   = interfaces.EntryRepository
	PasswordGenerator = interfaces.PasswordGenerator
	VaultSession      = interfaces.VaultSession
)

// Re-exported constants.
const (
	StateClosed    = types.StateClosed
	StateUnlocking = types.StateUnlocking
	StateUnlocked  = types.StateUnlocked
	StateLocked    = types.StateLocked

	LockFlush   = types.LockFlush
	LockDiscard = types.LockDiscard

	ContainerFormat = types.ContainerFormat
	DefaultCategory = types.DefaultCategory

	KDFPBKDF2SHA256 = types.KDFPBKDF2SHA256
	KDFArgon2id     = types.KDFArgon2id
	KDFScrypt       = types.KDFScrypt
)

// DefaultGeneratorPolicy enables every character class at length 16.
func DefaultGeneratorPolicy() GeneratorPolicy { return types.DefaultGeneratorPolicy() }

// DefaultCategories returns a fresh copy of the categories seeded into new vaults.
func DefaultCategories() []string {
	return append([]string(nil), types.DefaultCategories...)
}

// ParseEntryID parses the decimal form of an entry id.
func ParseEntryID(s string) (EntryID, error) { return types.ParseEntryID(s) }
