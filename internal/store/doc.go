// Package store owns the lifecycle of one vault file.
//
// A Store moves between four states: Closed, Unlocking, Unlocked and Locked.
// While Unlocked it holds the master key in locked memory and the decrypted
// vault, exposes an entries.Repository over that vault, and writes the vault
// back through the codec on Save, on the autosave ticker and, under the flush
// lock policy, on Lock.
//
// Every write goes to a temporary file in the target directory, is synced,
// and then renamed over the previous file, so an interrupted save leaves the
// last good vault in place. Saves are serialized; the dirty flag is cleared
// only when nothing changed while the save was running.
//
// Within one process a path can be held by a single Store at a time. There is
// no cross-process locking.
package store
