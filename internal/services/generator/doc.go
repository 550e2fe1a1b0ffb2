// Package generator synthesizes random passwords and rates password
// strength.
//
// Characters are drawn uniformly from the pool built from the enabled
// classes using crypto/rand. The strength meter is a coarse 0..4 score with
// human-readable feedback; it is advisory and never blocks storing an entry.
// ValidateMasterPassword is the one hard policy: a minimum length for the
// password that protects the whole vault.
package generator
