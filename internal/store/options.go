package store

import (
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"

	"svault/internal/domain"
)

// DefaultAutosaveInterval is how often a dirty vault is written back.
const DefaultAutosaveInterval = 5 * time.Minute

// Options configures a Store. The zero value is usable.
type Options struct {
	// KDF selects the algorithm and cost for Create and ChangePassword. The
	// salt is always generated fresh. Zero means the package defaults.
	KDF domain.KDFParams

	// LockPolicy decides whether Lock saves or drops pending changes.
	// Empty means LockFlush.
	LockPolicy domain.LockPolicy

	// AutosaveInterval is the autosave period. Negative disables autosave;
	// zero means DefaultAutosaveInterval.
	AutosaveInterval time.Duration

	// UnlockLimiter throttles Open and Unlock attempts. Nil means unlimited.
	UnlockLimiter *rate.Limiter

	Logger  *slog.Logger
	Metrics *Metrics

	// Now is the clock used for timestamps. Nil means time.Now.
	Now func() time.Time
}

// NewUnlockLimiter allows perMinute attempts per minute after an initial
// burst. A burst below one is raised to one, since rate.Limiter refuses
// every Wait with a zero burst.
func NewUnlockLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

func (o Options) withDefaults() Options {
	if o.LockPolicy == "" {
		o.LockPolicy = domain.LockFlush
	}
	if o.AutosaveInterval == 0 {
		o.AutosaveInterval = DefaultAutosaveInterval
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Metrics == nil {
		o.Metrics = NewMetrics(nil)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

var defaultRename = os.Rename
