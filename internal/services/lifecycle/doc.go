// Package lifecycle bounds how long secrets live outside the vault file.
//
// Scheduler runs one-shot tasks keyed by slot; rescheduling a slot replaces
// the pending task and a fired task runs only if its token is still current.
// ClipboardGuard uses it to clear a copied password after a delay, but only
// when the clipboard still holds what this process put there. ScrubVault
// drops decrypted entry fields when a session locks.
//
// Go strings are immutable and the garbage collector may have copied them,
// so scrubbing removes references rather than guaranteeing erasure. Key
// material lives in crypto.SecretKey, which does wipe its memory.
package lifecycle
