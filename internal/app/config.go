package app

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"svault/internal/domain"
	"svault/internal/services/lifecycle"
	"svault/internal/store"
)

// Environment overrides.
const (
	EnvVault         = "SVAULT_VAULT"
	EnvKDFIterations = "SVAULT_KDF_ITERATIONS"
)

const (
	configFile = "config.yaml"
	vaultFile  = "vault.svdb"
)

// KDFConfig selects the derivation used when a vault is created or
// re-keyed. Existing vaults keep the parameters recorded in their header.
// Iterations is the cost in the algorithm's own unit; zero selects the
// algorithm's default.
type KDFConfig struct {
	Algorithm  string `yaml:"algorithm"`
	Iterations uint32 `yaml:"iterations"`
}

// kdfCostRange bounds a configured non-zero cost per algorithm: PBKDF2
// iterations, argon2id passes, scrypt log2(N).
var kdfCostRange = map[string][2]uint32{
	domain.KDFPBKDF2SHA256: {1_000, 10_000_000},
	domain.KDFArgon2id:     {1, 16},
	domain.KDFScrypt:       {10, 20},
}

// RateConfig throttles unlock attempts.
type RateConfig struct {
	PerMinute int `yaml:"per_minute"`
	Burst     int `yaml:"burst"`
}

// Config holds runtime wiring options for building the app.
type Config struct {
	Home             string                 `yaml:"-"` // config directory, e.g. $HOME/.svault
	DefaultVault     string                 `yaml:"default_vault"`
	KDF              KDFConfig              `yaml:"kdf"`
	AutosaveInterval time.Duration          `yaml:"autosave_interval"`
	ClipboardClear   time.Duration          `yaml:"clipboard_clear"`
	LockPolicy       domain.LockPolicy      `yaml:"lock_policy"`
	UnlockRate       RateConfig             `yaml:"unlock_rate"`
	Generator        domain.GeneratorPolicy `yaml:"generator"`

	// Optional collaborators; nil selects the defaults.
	Clipboard  domain.Clipboard      `yaml:"-"`
	Logger     *slog.Logger          `yaml:"-"`
	Registerer prometheus.Registerer `yaml:"-"`
}

// DefaultHome returns $HOME/.svault.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".svault"
	}
	return filepath.Join(home, ".svault")
}

// DefaultConfig returns the documented defaults rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		Home:             home,
		DefaultVault:     filepath.Join(home, vaultFile),
		KDF:              KDFConfig{Algorithm: domain.KDFPBKDF2SHA256},
		AutosaveInterval: store.DefaultAutosaveInterval,
		ClipboardClear:   lifecycle.DefaultClipboardDelay,
		LockPolicy:       domain.LockFlush,
		UnlockRate:       RateConfig{PerMinute: 5, Burst: 3},
		Generator:        domain.DefaultGeneratorPolicy(),
	}
}

// LoadConfig reads the YAML file at path over the defaults and applies the
// environment. An empty path means home/config.yaml, which may be absent.
func LoadConfig(home, path string) (Config, error) {
	cfg := DefaultConfig(home)
	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, configFile)
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(b); err != nil {
			return Config{}, pkgerrors.Wrapf(err, "config %s", path)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, domain.E(domain.KindIO, "load config", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg.DefaultVault = expandHome(cfg.DefaultVault)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(b []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return domain.E(domain.KindValidation, "parse config", err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvVault); ok && v != "" {
		c.DefaultVault = v
	}
	if v, ok := lookup(EnvKDFIterations); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return domain.Errorf(domain.KindValidation, "config", "%s: %v", EnvKDFIterations, err)
		}
		c.KDF.Iterations = uint32(n)
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	const op = "config"
	bounds, ok := kdfCostRange[c.KDF.Algorithm]
	if !ok {
		return domain.Errorf(domain.KindValidation, op, "unknown kdf algorithm %q", c.KDF.Algorithm)
	}
	if n := c.KDF.Iterations; n != 0 && (n < bounds[0] || n > bounds[1]) {
		return domain.Errorf(domain.KindValidation, op, "kdf.iterations %d out of range %d..%d for %s",
			n, bounds[0], bounds[1], c.KDF.Algorithm)
	}
	if c.AutosaveInterval <= 0 {
		return domain.Errorf(domain.KindValidation, op, "autosave_interval must be positive")
	}
	if c.ClipboardClear <= 0 {
		return domain.Errorf(domain.KindValidation, op, "clipboard_clear must be positive")
	}
	if !c.LockPolicy.Valid() {
		return domain.Errorf(domain.KindValidation, op, "unknown lock_policy %q", c.LockPolicy)
	}
	if c.UnlockRate.PerMinute < 0 || c.UnlockRate.Burst < 0 {
		return domain.Errorf(domain.KindValidation, op, "unlock_rate must not be negative")
	}
	if c.UnlockRate.PerMinute > 0 && c.UnlockRate.Burst < 1 {
		return domain.Errorf(domain.KindValidation, op, "unlock_rate.burst must be at least 1 when per_minute is set")
	}
	if c.DefaultVault == "" {
		return domain.Errorf(domain.KindValidation, op, "default_vault is required")
	}
	return nil
}
