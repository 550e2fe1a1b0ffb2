package generator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svault/internal/domain"
	"svault/internal/services/generator"
)

func TestGenerateRejectsEmptyPolicy(t *testing.T) {
	g := generator.New()

	_, err := g.Generate(domain.GeneratorPolicy{Length: 16})
	assert.ErrorIs(t, err, domain.ErrValidation)

	p := domain.DefaultGeneratorPolicy()
	p.Length = 0
	_, err = g.Generate(p)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerateDigitsOnly(t *testing.T) {
	out, err := generator.New().Generate(domain.GeneratorPolicy{Length: 10, Digits: true})
	require.NoError(t, err)
	require.Len(t, out, 10)
	for _, r := range out {
		assert.True(t, r >= '0' && r <= '9', "unexpected %q", r)
	}
}

func TestGenerateDrawsOnlyFromPool(t *testing.T) {
	cases := map[string]domain.GeneratorPolicy{
		"default":        domain.DefaultGeneratorPolicy(),
		"upper":          {Length: 64, Upper: true},
		"lower symbols":  {Length: 64, Lower: true, Symbols: true},
		"no ambiguous":   {Length: 256, Upper: true, Lower: true, Digits: true, Symbols: true, ExcludeAmbiguous: true},
		"single char ok": {Length: 1, Digits: true},
	}
	g := generator.New()
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			pool := generator.Pool(p)
			out, err := g.Generate(p)
			require.NoError(t, err)
			assert.Len(t, out, p.Length)
			for _, r := range out {
				assert.True(t, strings.ContainsRune(pool, r), "%q not in pool", r)
			}
		})
	}
}

func TestPoolExcludesAmbiguous(t *testing.T) {
	p := domain.DefaultGeneratorPolicy()
	p.ExcludeAmbiguous = true
	pool := generator.Pool(p)
	for _, r := range generator.Ambiguous {
		assert.NotContains(t, pool, string(r))
	}
	assert.Contains(t, pool, "A")
	assert.Contains(t, pool, "9")
}

func TestGenerateCoversPool(t *testing.T) {
	out, err := generator.New().Generate(domain.GeneratorPolicy{Length: 5000, Digits: true})
	require.NoError(t, err)
	for _, d := range generator.Digits {
		assert.Contains(t, out, string(d))
	}
}

func TestStrength(t *testing.T) {
	cases := []struct {
		password string
		score    int
		hint     string
	}{
		{"password", 0, "Avoid common passwords"},
		{"short", 0, "Password should be at least 8 characters"},
		{"abcdefgh", 0, "Avoid sequential characters"},
		{"hello world", 2, "Add uppercase letters"},
		{"Tr0ub4dor&3", 4, ""},
		{"Xk9#mQ2$", 4, ""},
	}
	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			s := generator.Strength(tc.password)
			assert.Equal(t, tc.score, s.Score)
			assert.NotEmpty(t, s.Label)
			if tc.hint != "" {
				assert.Contains(t, s.Feedback, tc.hint)
			} else {
				assert.Empty(t, s.Feedback)
			}
		})
	}
}

func TestValidateMasterPassword(t *testing.T) {
	assert.ErrorIs(t, generator.ValidateMasterPassword([]byte("short")), domain.ErrValidation)
	assert.NoError(t, generator.ValidateMasterPassword([]byte("Tr0ub4dor&3")))
}
