package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecretKeyLifecycle(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	want := append([]byte(nil), raw...)

	k := NewSecretKey(raw)
	assert.Equal(t, make([]byte, len(raw)), raw, "source buffer must be wiped")
	assert.True(t, k.Alive())
	assert.Equal(t, want, k.Bytes())

	k.Destroy()
	assert.False(t, k.Alive())
	assert.Nil(t, k.Bytes())
	k.Destroy()
}

func TestWipe(t *testing.T) {
	b := []byte("sensitive")
	Wipe(b)
	assert.Equal(t, make([]byte, len("sensitive")), b)
	Wipe(nil)

	a, c := []byte("one"), []byte("two")
	Wipe(a, c)
	assert.Equal(t, []byte{0, 0, 0}, a)
	assert.Equal(t, []byte{0, 0, 0}, c)
}

func TestFingerprint(t *testing.T) {
	salt := []byte("0123456789abcdef")
	fp := Fingerprint("id-1", salt)
	assert.Regexp(t, `^[0-9a-f]{4}(-[0-9a-f]{4}){4}$`, fp)
	assert.Equal(t, fp, Fingerprint("id-1", salt))
	assert.NotEqual(t, fp, Fingerprint("id-2", salt))
	assert.NotEqual(t, fp, Fingerprint("id-1", []byte("fedcba9876543210")))
	// The length prefix keeps id and salt from sliding into each other.
	assert.NotEqual(t, Fingerprint("ab", []byte("c")), Fingerprint("a", []byte("bc")))
}
