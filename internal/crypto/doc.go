// Package crypto exposes the primitives the vault engine is built on.
//
// Contents
//
//   - Password-based key derivation (DeriveKey) with PBKDF2-HMAC-SHA256 as the
//     default and argon2id or scrypt when recorded in a container
//   - Authenticated encryption with XChaCha20-Poly1305 (Seal, Open)
//   - A locked, guarded buffer for the master key (SecretKey)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short fingerprints for display (Fingerprint)
//
// # Notes
//
// Open reports every failure as ErrDecrypt. A wrong key, a flipped bit and a
// truncated payload are indistinguishable at this layer.
package crypto
