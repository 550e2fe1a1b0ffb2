package crypto

import (
	"sync"

	"github.com/awnumar/memguard"
)

// SecretKey holds key material in an mlocked, guard-paged buffer.
type SecretKey struct {
	mu  sync.Mutex
	buf *memguard.LockedBuffer
}

// NewSecretKey moves b into locked memory. b is wiped.
func NewSecretKey(b []byte) *SecretKey {
	return &SecretKey{buf: memguard.NewBufferFromBytes(b)}
}

// Bytes returns the key. The slice is only valid until Destroy.
func (k *SecretKey) Bytes() []byte {
	if k == nil {
		return nil
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.buf == nil || !k.buf.IsAlive() {
		return nil
	}
	return k.buf.Bytes()
}

// Alive reports whether the key has not been destroyed.
func (k *SecretKey) Alive() bool {
	if k == nil {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.buf != nil && k.buf.IsAlive()
}

// Destroy wipes and releases the buffer. Safe to call more than once.
func (k *SecretKey) Destroy() {
	if k == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.buf != nil {
		k.buf.Destroy()
		k.buf = nil
	}
}
