package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randBytes(t testing.TB, n int) []byte {
	t.Helper()
	b, err := RandomBytes(n)
	require.NoError(t, err)
	return b
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := randBytes(t, KeyBytes)
	pt := randBytes(t, 4096)
	aad := []byte("context")

	ct, err := Seal(key, pt, aad)
	require.NoError(t, err)
	out, err := Open(key, ct, aad)
	require.NoError(t, err)
	assert.Equal(t, pt, out)
}

func TestOpenWrongKey(t *testing.T) {
	ct, err := Seal(randBytes(t, KeyBytes), []byte("secret-data"), nil)
	require.NoError(t, err)

	_, err = Open(randBytes(t, KeyBytes), ct, nil)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestOpenAADMismatch(t *testing.T) {
	key := randBytes(t, KeyBytes)
	ct, err := Seal(key, []byte("secret-data"), []byte("aad-1"))
	require.NoError(t, err)

	_, err = Open(key, ct, []byte("aad-2"))
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestOpenEveryBitFlip(t *testing.T) {
	key := randBytes(t, KeyBytes)
	ct, err := Seal(key, []byte("hello"), nil)
	require.NoError(t, err)

	for i := range ct {
		for bit := 0; bit < 8; bit++ {
			mut := append([]byte(nil), ct...)
			mut[i] ^= 1 << bit
			_, err := Open(key, mut, nil)
			require.ErrorIsf(t, err, ErrDecrypt, "flip byte %d bit %d", i, bit)
		}
	}
}

func TestOpenTruncation(t *testing.T) {
	key := randBytes(t, KeyBytes)
	ct, err := Seal(key, []byte("hello"), nil)
	require.NoError(t, err)

	for _, n := range []int{0, 1, NonceBytes, len(ct) - 1} {
		_, err := Open(key, ct[:n], nil)
		assert.ErrorIs(t, err, ErrDecrypt, "length %d", n)
	}
}

func TestSealFreshNonce(t *testing.T) {
	key := randBytes(t, KeyBytes)
	ct1, err := Seal(key, []byte("data"), nil)
	require.NoError(t, err)
	ct2, err := Seal(key, []byte("data"), nil)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(ct1[:NonceBytes], ct2[:NonceBytes]), "nonce reused")
	assert.NotEqual(t, ct1, ct2)
}

func FuzzSealRejectMutations(f *testing.F) {
	f.Add([]byte("hello"), []byte("aad"))
	f.Add([]byte(""), []byte(""))
	f.Fuzz(func(t *testing.T, pt, aad []byte) {
		key := randBytes(t, KeyBytes)
		ct, err := Seal(key, pt, aad)
		if err != nil {
			t.Fatalf("seal: %v", err)
		}
		if _, err := Open(key, ct, aad); err != nil {
			t.Fatalf("open baseline: %v", err)
		}
		mut := append([]byte(nil), ct...)
		idx := len(pt) % len(mut)
		mut[idx] ^= 0xFF
		if _, err := Open(key, mut, aad); err == nil {
			t.Fatalf("mutation at %d succeeded", idx)
		}
	})
}
