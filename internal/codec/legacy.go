package codec

import (
	"bytes"
	"encoding/base64"

	"github.com/fernet/fernet-go"
	"github.com/pkg/errors"

	"svault/internal/crypto"
	"svault/internal/domain"
)

// LegacyVersion is the container version assigned to 1.x files, which carry
// no header of their own.
const LegacyVersion = "1.3.0"

// A 1.x file is a raw 16-byte salt followed by a Fernet token. The token's
// version byte 0x80 and a 32-bit timestamp encode to this prefix.
const (
	legacySaltBytes   = 16
	legacyTokenPrefix = "gAAAAA"
	// version, timestamp, IV, one AES block and the HMAC, base64url encoded.
	legacyMinToken = (1 + 8 + 16 + 16 + 32 + 2) / 3 * 4
)

func isLegacyFile(b []byte) bool {
	if len(b) < legacySaltBytes+legacyMinToken {
		return false
	}
	return bytes.HasPrefix(b[legacySaltBytes:], []byte(legacyTokenPrefix))
}

// decodeLegacy splits a 1.x file into a container. The key was always
// PBKDF2-SHA256 at 600000 iterations over the stored salt.
func decodeLegacy(b []byte) domain.Container {
	salt := append([]byte(nil), b[:legacySaltBytes]...)
	return domain.Container{
		Version:    LegacyVersion,
		Salt:       salt,
		KDF:        domain.KDFParams{Algorithm: domain.KDFPBKDF2SHA256, Iterations: crypto.DefaultPBKDF2Iterations, Salt: salt},
		Ciphertext: bytes.TrimSpace(b[legacySaltBytes:]),
	}
}

func isLegacy(c domain.Container) bool {
	return c.Format == "" && major(c.Version) == majorLegacy
}

// openLegacy verifies and decrypts a Fernet token. The Fernet key is the
// base64url form of the derived key; tokens never expire.
func openLegacy(c domain.Container, key []byte) ([]byte, error) {
	k, err := fernet.DecodeKey(base64.URLEncoding.EncodeToString(key))
	if err != nil {
		return nil, errors.Wrap(err, "legacy key")
	}
	defer crypto.Wipe(k[:])
	pt := fernet.VerifyAndDecrypt(c.Ciphertext, 0, []*fernet.Key{k})
	if pt == nil {
		return nil, errors.New("fernet token rejected")
	}
	return pt, nil
}
