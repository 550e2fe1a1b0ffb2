package generator

import (
	"crypto/rand"
	"math/big"
	"strings"

	"svault/internal/domain"
)

// Character classes.
const (
	Upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lower   = "abcdefghijklmnopqrstuvwxyz"
	Digits  = "0123456789"
	Symbols = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// Ambiguous characters are dropped when ExcludeAmbiguous is set.
	Ambiguous = "0Oo1lI|"
)

// Service implements domain.PasswordGenerator.
type Service struct{}

// New returns a password generator.
func New() *Service { return &Service{} }

// Pool returns the characters a policy draws from.
func Pool(p domain.GeneratorPolicy) string {
	var b strings.Builder
	for _, class := range []struct {
		on  bool
		set string
	}{
		{p.Upper, Upper},
		{p.Lower, Lower},
		{p.Digits, Digits},
		{p.Symbols, Symbols},
	} {
		if !class.on {
			continue
		}
		for _, r := range class.set {
			if p.ExcludeAmbiguous && strings.ContainsRune(Ambiguous, r) {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Generate draws policy.Length characters uniformly from Pool(policy).
func (s *Service) Generate(policy domain.GeneratorPolicy) (string, error) {
	const op = "generate"
	if policy.Length < 1 {
		return "", domain.Errorf(domain.KindValidation, op, "length must be at least 1, got %d", policy.Length)
	}
	pool := Pool(policy)
	if pool == "" {
		return "", domain.Errorf(domain.KindValidation, op, "no character class enabled")
	}
	n := big.NewInt(int64(len(pool)))
	out := make([]byte, policy.Length)
	for i := range out {
		k, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", domain.E(domain.KindIO, op, err)
		}
		out[i] = pool[k.Int64()]
	}
	return string(out), nil
}

// Compile-time assertion that Service implements domain.PasswordGenerator.
var _ domain.PasswordGenerator = (*Service)(nil)
