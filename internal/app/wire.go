package app

import (
	"log/slog"

	"svault/internal/domain"
	"svault/internal/platform"
	"svault/internal/services/generator"
	"svault/internal/services/lifecycle"
	"svault/internal/store"
)

// Wire bundles the store, services and platform adapters for the CLI.
type Wire struct {
	Store     *store.Store
	Generator *generator.Service
	Scheduler *lifecycle.Scheduler
	Clipboard *lifecycle.ClipboardGuard
	Metrics   *store.Metrics
	Logger    *slog.Logger
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cb := cfg.Clipboard
	if cb == nil {
		cb = platform.NewClipboard()
	}
	metrics := store.NewMetrics(cfg.Registerer)

	st := store.New(store.Options{
		KDF:              domain.KDFParams{Algorithm: cfg.KDF.Algorithm, Iterations: cfg.KDF.Iterations},
		LockPolicy:       cfg.LockPolicy,
		AutosaveInterval: cfg.AutosaveInterval,
		UnlockLimiter:    store.NewUnlockLimiter(cfg.UnlockRate.PerMinute, cfg.UnlockRate.Burst),
		Logger:           logger.With("component", "store"),
		Metrics:          metrics,
	})
	sched := lifecycle.NewScheduler()

	return &Wire{
		Store:     st,
		Generator: generator.New(),
		Scheduler: sched,
		Clipboard: lifecycle.NewClipboardGuard(cb, sched, cfg.ClipboardClear, logger.With("component", "clipboard")),
		Metrics:   metrics,
		Logger:    logger,
	}, nil
}
