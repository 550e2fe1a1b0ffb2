// Package codec converts between the logical vault, its canonical plaintext
// encoding and the encrypted on-disk container.
//
// Layers
//
//   - Serialize / Deserialize: canonical JSON for the decrypted payload. The
//     payload is checked against a JSON Schema before it is decoded into fixed
//     structs, then domain invariants are verified.
//   - Wrap / Unwrap: Serialize + Seal and Open + Deserialize. The container
//     header is bound to the ciphertext as associated data.
//   - EncodeContainer / DecodeContainer: the JSON document stored on disk.
//
// # Versions
//
// Containers carry a semantic version. 1.x files are migrated forward on
// Unwrap; anything newer than CurrentVersion fails closed with ErrUnsupported.
package codec
