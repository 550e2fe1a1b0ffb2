package app

import (
	"context"
	"time"

	"svault/internal/domain"
	"svault/internal/services/generator"
)

// Field names accepted by CopyEntryField.
const (
	FieldPassword = "password"
	FieldUsername = "username"
	FieldURL      = "url"
)

// App is the engine surface consumed by the CLI. It owns one vault session.
type App struct {
	cfg  Config
	wire *Wire
}

// New wires an App from cfg.
func New(cfg Config) (*App, error) {
	w, err := NewWire(cfg)
	if err != nil {
		return nil, err
	}
	return &App{cfg: cfg, wire: w}, nil
}

// Config returns the configuration the app was built with.
func (a *App) Config() Config { return a.cfg }

// Wire exposes the underlying dependency graph.
func (a *App) Wire() *Wire { return a.wire }

// Create makes a new vault at path after checking the master password policy.
func (a *App) Create(ctx context.Context, path string, password []byte) error {
	if err := generator.ValidateMasterPassword(password); err != nil {
		return err
	}
	return a.wire.Store.Create(ctx, path, password)
}

// Open unlocks the vault at path.
func (a *App) Open(ctx context.Context, path string, password []byte) error {
	return a.wire.Store.Open(ctx, path, password)
}

func (a *App) Save(ctx context.Context) error { return a.wire.Store.Save(ctx) }
func (a *App) Lock(ctx context.Context) error { return a.wire.Store.Lock(ctx) }
func (a *App) IsDirty() bool                  { return a.wire.Store.IsDirty() }
func (a *App) State() domain.State            { return a.wire.Store.State() }
func (a *App) Header() domain.Container       { return a.wire.Store.Header() }
func (a *App) Path() string                   { return a.wire.Store.Path() }

// Unlock unlocks a locked vault again.
func (a *App) Unlock(ctx context.Context, password []byte) error {
	return a.wire.Store.Unlock(ctx, password)
}

// Entries returns the entry repository of the open session.
func (a *App) Entries() domain.EntryRepository { return a.wire.Store.Entries() }

// ChangePassword re-keys the open vault with the configured KDF.
func (a *App) ChangePassword(ctx context.Context, newPassword []byte) error {
	if err := generator.ValidateMasterPassword(newPassword); err != nil {
		return err
	}
	return a.wire.Store.ChangePassword(ctx, newPassword, domain.KDFParams{})
}

// GeneratePassword draws a password for policy.
func (a *App) GeneratePassword(policy domain.GeneratorPolicy) (string, error) {
	return a.wire.Generator.Generate(policy)
}

// Strength rates password.
func (a *App) Strength(password string) domain.Strength { return generator.Strength(password) }

// CopyToClipboard copies value and schedules its removal.
func (a *App) CopyToClipboard(value string) error { return a.wire.Clipboard.Copy(value) }

// CopyEntryField copies one field of an entry to the clipboard.
func (a *App) CopyEntryField(id domain.EntryID, field string) error {
	e, err := a.Entries().Get(id)
	if err != nil {
		return err
	}
	var v string
	switch field {
	case "", FieldPassword:
		v = e.Password
	case FieldUsername:
		v = e.Username
	case FieldURL:
		v = e.URL
	default:
		return domain.Errorf(domain.KindValidation, "copy", "unknown field %q", field)
	}
	return a.CopyToClipboard(v)
}

// CancelClipboardClear keeps the current clipboard content.
func (a *App) CancelClipboardClear() bool { return a.wire.Clipboard.Cancel() }

// ClipboardDelay is how long copied values stay on the clipboard.
func (a *App) ClipboardDelay() time.Duration { return a.wire.Clipboard.Delay() }

// Close locks the vault under the configured policy, then releases it and
// stops pending timers. A copied secret still on the clipboard is cleared.
// If the flush on lock fails the vault stays open and the error is returned.
func (a *App) Close(ctx context.Context) error {
	if a.wire.Store.State() == domain.StateUnlocked {
		if err := a.wire.Store.Lock(ctx); err != nil {
			return err
		}
	}
	if _, err := a.wire.Clipboard.ClearIfOwned(); err != nil {
		a.wire.Logger.Warn("clipboard not cleared on close", "err", err)
	}
	a.wire.Scheduler.Stop()
	return a.wire.Store.Close()
}
