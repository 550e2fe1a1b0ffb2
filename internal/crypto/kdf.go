package crypto

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"

	"svault/internal/domain"
)

const (
	KeyBytes     = 32
	SaltBytes    = 16
	MinSaltBytes = 16
	MaxSaltBytes = 64
)

// Defaults per algorithm.
const (
	DefaultPBKDF2Iterations = 600_000

	DefaultArgon2Time      = 3
	DefaultArgon2MemoryKiB = 64 * 1024
	DefaultArgon2Threads   = 4

	DefaultScryptLogN = 15
	scryptR           = 8
	scryptP           = 1
)

// DefaultKDFParams returns the default derivation parameters without a salt.
func DefaultKDFParams() domain.KDFParams {
	return domain.KDFParams{Algorithm: domain.KDFPBKDF2SHA256, Iterations: DefaultPBKDF2Iterations}
}

// NewKDFParams returns parameters for algorithm with a fresh random salt.
// A zero cost selects the algorithm's default.
func NewKDFParams(algorithm string, cost uint32) (domain.KDFParams, error) {
	p := domain.KDFParams{Algorithm: algorithm, Iterations: cost}
	switch algorithm {
	case "", domain.KDFPBKDF2SHA256:
		p.Algorithm = domain.KDFPBKDF2SHA256
		if p.Iterations == 0 {
			p.Iterations = DefaultPBKDF2Iterations
		}
	case domain.KDFArgon2id:
		if p.Iterations == 0 {
			p.Iterations = DefaultArgon2Time
		}
		p.MemoryKiB = DefaultArgon2MemoryKiB
		p.Parallelism = DefaultArgon2Threads
	case domain.KDFScrypt:
		if p.Iterations == 0 {
			p.Iterations = DefaultScryptLogN
		}
	}
	salt, err := RandomBytes(SaltBytes)
	if err != nil {
		return domain.KDFParams{}, err
	}
	p.Salt = salt
	if err := ValidateKDFParams(p); err != nil {
		return domain.KDFParams{}, err
	}
	return p, nil
}

// ValidateKDFParams checks the salt length and the cost parameters.
func ValidateKDFParams(p domain.KDFParams) error {
	const op = "kdf"
	if n := len(p.Salt); n < MinSaltBytes || n > MaxSaltBytes {
		return domain.Errorf(domain.KindValidation, op, "malformed salt length %d", n)
	}
	switch p.Algorithm {
	case domain.KDFPBKDF2SHA256:
		if p.Iterations == 0 {
			return domain.Errorf(domain.KindValidation, op, "pbkdf2 iterations must be positive")
		}
	case domain.KDFArgon2id:
		if p.Iterations == 0 || p.Parallelism == 0 || p.MemoryKiB < 8*uint32(p.Parallelism) {
			return domain.Errorf(domain.KindValidation, op, "invalid argon2id cost t=%d m=%d p=%d",
				p.Iterations, p.MemoryKiB, p.Parallelism)
		}
	case domain.KDFScrypt:
		if p.Iterations < 10 || p.Iterations > 30 {
			return domain.Errorf(domain.KindValidation, op, "scrypt log2(N) %d out of range", p.Iterations)
		}
	default:
		return domain.Errorf(domain.KindValidation, op, "unknown algorithm %q", p.Algorithm)
	}
	return nil
}

// DeriveKey turns password and p.Salt into a KeyBytes-long key. The same
// inputs always yield the same key.
func DeriveKey(password []byte, p domain.KDFParams) ([]byte, error) {
	if err := ValidateKDFParams(p); err != nil {
		return nil, err
	}
	switch p.Algorithm {
	case domain.KDFArgon2id:
		return argon2.IDKey(password, p.Salt, p.Iterations, p.MemoryKiB, p.Parallelism, KeyBytes), nil
	case domain.KDFScrypt:
		key, err := scrypt.Key(password, p.Salt, 1<<p.Iterations, scryptR, scryptP, KeyBytes)
		if err != nil {
			return nil, fmt.Errorf("scrypt: %w", err)
		}
		return key, nil
	default:
		return pbkdf2.Key(password, p.Salt, int(p.Iterations), KeyBytes, sha256.New), nil
	}
}
