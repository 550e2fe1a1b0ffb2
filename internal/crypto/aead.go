package crypto

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// NonceBytes is the XChaCha20-Poly1305 nonce length prefixed to every ciphertext.
const NonceBytes = chacha20poly1305.NonceSizeX

// ErrDecrypt is returned by Open for every authentication failure.
var ErrDecrypt = errors.New("crypto: message authentication failed")

// Seal encrypts plaintext under key with a fresh random nonce.
// Layout: nonce || ciphertext || tag.
func Seal(key, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, NonceBytes, NonceBytes+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, aad), nil
}

// Open authenticates and decrypts data produced by Seal.
func Open(key, ciphertext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < NonceBytes+aead.Overhead() {
		return nil, ErrDecrypt
	}
	pt, err := aead.Open(nil, ciphertext[:NonceBytes], ciphertext[NonceBytes:], aad)
	if err != nil {
		return nil, ErrDecrypt
	}
	return pt, nil
}
