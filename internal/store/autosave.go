package store

import (
	"context"
	"time"
)

func (s *Store) startAutosave() {
	if s.opts.AutosaveInterval < 0 {
		return
	}
	s.asMu.Lock()
	defer s.asMu.Unlock()
	if s.asCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.asCancel, s.asDone = cancel, done
	go s.autosaveLoop(ctx, done, s.opts.AutosaveInterval)
}

// stopAutosave cancels the ticker goroutine and waits for it to exit. It must
// not be called with saveMu held.
func (s *Store) stopAutosave() {
	s.asMu.Lock()
	cancel, done := s.asCancel, s.asDone
	s.asCancel, s.asDone = nil, nil
	s.asMu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Store) autosaveLoop(ctx context.Context, done chan<- struct{}, every time.Duration) {
	defer close(done)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.autosave(ctx)
		}
	}
}

// autosave writes the vault when it is dirty. Clean vaults are left alone.
func (s *Store) autosave(ctx context.Context) {
	if !s.IsDirty() {
		return
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	s.opts.Metrics.Autosaves.Inc()
	if err := s.save(ctx, "autosave"); err != nil {
		s.opts.Logger.Error("autosave failed", "path", s.Path(), "err", err)
	}
}
