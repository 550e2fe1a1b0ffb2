package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// Fingerprint identifies a vault file by its id and salt without revealing
// either. Copies of one vault share a fingerprint; a password change gives a
// new salt and so a new fingerprint.
//
// SHA-256 over the length-prefixed id and the salt, truncated to 10 bytes and
// printed as five dash-separated groups of four hex digits.
func Fingerprint(id string, salt []byte) string {
	h := sha256.New()
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(id)))
	h.Write(n[:])
	h.Write([]byte(id))
	h.Write(salt)
	sum := hex.EncodeToString(h.Sum(nil)[:10])

	groups := make([]string, 0, len(sum)/4)
	for i := 0; i < len(sum); i += 4 {
		groups = append(groups, sum[i:i+4])
	}
	return strings.Join(groups, "-")
}
