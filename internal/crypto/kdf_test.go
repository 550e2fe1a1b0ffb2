package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svault/internal/domain"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	salt := randBytes(t, SaltBytes)
	cases := []domain.KDFParams{
		{Algorithm: domain.KDFPBKDF2SHA256, Iterations: 1000, Salt: salt},
		{Algorithm: domain.KDFArgon2id, Iterations: 1, MemoryKiB: 64, Parallelism: 1, Salt: salt},
		{Algorithm: domain.KDFScrypt, Iterations: 10, Salt: salt},
	}
	for _, p := range cases {
		t.Run(p.Algorithm, func(t *testing.T) {
			k1, err := DeriveKey([]byte("Tr0ub4dor&3"), p)
			require.NoError(t, err)
			k2, err := DeriveKey([]byte("Tr0ub4dor&3"), p)
			require.NoError(t, err)
			assert.Len(t, k1, KeyBytes)
			assert.Equal(t, k1, k2)

			k3, err := DeriveKey([]byte("wrong"), p)
			require.NoError(t, err)
			assert.NotEqual(t, k1, k3)
		})
	}
}

func TestDeriveKeySaltMatters(t *testing.T) {
	p1 := domain.KDFParams{Algorithm: domain.KDFPBKDF2SHA256, Iterations: 1000, Salt: randBytes(t, SaltBytes)}
	p2 := p1
	p2.Salt = randBytes(t, SaltBytes)

	k1, err := DeriveKey([]byte("pw"), p1)
	require.NoError(t, err)
	k2, err := DeriveKey([]byte("pw"), p2)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestDeriveKeyMalformedSalt(t *testing.T) {
	for _, n := range []int{0, 8, MinSaltBytes - 1, MaxSaltBytes + 1} {
		p := domain.KDFParams{Algorithm: domain.KDFPBKDF2SHA256, Iterations: 1000, Salt: make([]byte, n)}
		_, err := DeriveKey([]byte("pw"), p)
		assert.ErrorIs(t, err, domain.ErrValidation, "salt length %d", n)
	}
}

func TestValidateKDFParamsRejectsBadCost(t *testing.T) {
	salt := randBytes(t, SaltBytes)
	bad := []domain.KDFParams{
		{Algorithm: "md5", Iterations: 1, Salt: salt},
		{Algorithm: domain.KDFPBKDF2SHA256, Iterations: 0, Salt: salt},
		{Algorithm: domain.KDFArgon2id, Iterations: 1, MemoryKiB: 1, Parallelism: 4, Salt: salt},
		{Algorithm: domain.KDFScrypt, Iterations: 40, Salt: salt},
	}
	for _, p := range bad {
		assert.ErrorIs(t, ValidateKDFParams(p), domain.ErrValidation, "%+v", p)
	}
}

func TestNewKDFParamsDefaults(t *testing.T) {
	p, err := NewKDFParams("", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.KDFPBKDF2SHA256, p.Algorithm)
	assert.EqualValues(t, DefaultPBKDF2Iterations, p.Iterations)
	assert.Len(t, p.Salt, SaltBytes)

	a, err := NewKDFParams(domain.KDFArgon2id, 0)
	require.NoError(t, err)
	assert.EqualValues(t, DefaultArgon2MemoryKiB, a.MemoryKiB)

	q, err := NewKDFParams("", 0)
	require.NoError(t, err)
	assert.NotEqual(t, p.Salt, q.Salt)
}
