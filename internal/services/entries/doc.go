// Package entries implements the mutable view over an unlocked vault.
//
// A Repository does not own the vault it edits. Every call runs inside the
// owning store's lock through the Backend interface, so a mutation made here
// is part of the very next save and becomes unreachable once the store locks.
//
// The repository keeps a lower-case search index over title, username and
// URL, and a monotonically increasing id counter seeded from the largest id
// present when the vault was loaded.
package entries
