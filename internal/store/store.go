package store

import (
	"context"
	"errors"
	"os"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"svault/internal/codec"
	"svault/internal/crypto"
	"svault/internal/domain"
	"svault/internal/services/entries"
	"svault/internal/services/lifecycle"
)

// Store is one vault session. Create values with New; a Store can be reused
// after Close.
type Store struct {
	opts   Options
	rename func(oldpath, newpath string) error

	// saveMu serializes file writes and key teardown. It is always taken
	// before mu.
	saveMu sync.Mutex

	mu       sync.RWMutex
	state    domain.State
	path     string
	key      *crypto.SecretKey
	header   domain.Container
	vault    domain.Vault
	repo     *entries.Repository
	epoch    uint64
	gen      uint64
	savedGen uint64

	asMu     sync.Mutex
	asCancel context.CancelFunc
	asDone   chan struct{}
}

// New returns a Closed store.
func New(opts Options) *Store {
	s := &Store{opts: opts.withDefaults(), rename: defaultRename}
	s.repo = entries.New(session{s: s}, &domain.Vault{}, s.opts.Now)
	return s
}

// Create writes a new empty vault at path protected by password and leaves
// the store Unlocked. An existing file is never overwritten.
func (s *Store) Create(ctx context.Context, path string, password []byte) error {
	const op = "create"
	if len(password) == 0 {
		return domain.Errorf(domain.KindValidation, op, "master password is required")
	}
	abs, err := canonicalPath(path)
	if err != nil {
		return err
	}
	if err := s.begin(abs); err != nil {
		return err
	}
	c, key, v, err := s.create(ctx, abs, password)
	if err != nil {
		s.abort(domain.StateClosed)
		return err
	}
	if err := s.activate(c, key, v); err != nil {
		return err
	}
	s.opts.Logger.Info("vault created", "path", abs, "kdf", c.KDF.Algorithm)
	return nil
}

func (s *Store) create(ctx context.Context, path string, password []byte) (domain.Container, []byte, domain.Vault, error) {
	const op = "create"
	exists := &domain.Error{Kind: domain.KindIO, Op: op, Msg: "vault file already exists: " + path, Err: domain.ErrExists}
	if _, err := os.Stat(path); err == nil {
		return domain.Container{}, nil, domain.Vault{}, exists
	}
	kdf, err := crypto.NewKDFParams(s.opts.KDF.Algorithm, s.opts.KDF.Iterations)
	if err != nil {
		return domain.Container{}, nil, domain.Vault{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Container{}, nil, domain.Vault{}, err
	}
	key, err := crypto.DeriveKey(password, kdf)
	if err != nil {
		return domain.Container{}, nil, domain.Vault{}, err
	}
	now := s.opts.Now().UTC()
	v := domain.Vault{
		Version:    codec.CurrentVersion,
		Created:    now,
		Categories: domain.DefaultCategories(),
		Entries:    []domain.Entry{},
	}
	c, err := codec.Wrap(v, key, codec.NewHeader(kdf, now))
	if err == nil {
		var b []byte
		if b, err = codec.EncodeContainer(c); err == nil {
			err = createFile(path, b)
		}
	}
	if err != nil {
		crypto.Wipe(key)
		if errors.Is(err, domain.ErrExists) {
			return domain.Container{}, nil, domain.Vault{}, exists
		}
		return domain.Container{}, nil, domain.Vault{}, domain.E(domain.KindIO, op, err)
	}
	return c, key, v, nil
}

// Open reads the vault at path and unlocks it with password. On failure the
// store stays Closed.
func (s *Store) Open(ctx context.Context, path string, password []byte) error {
	abs, err := canonicalPath(path)
	if err != nil {
		return err
	}
	if err := s.begin(abs); err != nil {
		return err
	}
	c, key, v, err := s.unlockFile(ctx, abs, password)
	if err != nil {
		s.abort(domain.StateClosed)
		return err
	}
	if err := s.activate(c, key, v); err != nil {
		return err
	}
	s.opts.Logger.Info("vault opened", "path", abs, "version", c.Version, "entries", len(v.Entries))
	return nil
}

// Unlock re-reads the file of a Locked store and unlocks it with password.
// On failure the store stays Locked.
func (s *Store) Unlock(ctx context.Context, password []byte) error {
	s.mu.Lock()
	switch s.state {
	case domain.StateLocked:
	case domain.StateClosed:
		s.mu.Unlock()
		return domain.ErrClosed
	default:
		s.mu.Unlock()
		return pkgerrors.Wrap(domain.ErrAlreadyOpen, "unlock")
	}
	s.state = domain.StateUnlocking
	path := s.path
	s.mu.Unlock()

	c, key, v, err := s.unlockFile(ctx, path, password)
	if err != nil {
		s.abort(domain.StateLocked)
		return err
	}
	if err := s.activate(c, key, v); err != nil {
		return err
	}
	s.opts.Logger.Info("vault unlocked", "path", path)
	return nil
}

// begin claims path and moves a Closed store to Unlocking.
func (s *Store) begin(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateClosed {
		return pkgerrors.Wrapf(domain.ErrAlreadyOpen, "store holds %s", s.path)
	}
	if err := claim(path); err != nil {
		return err
	}
	s.state = domain.StateUnlocking
	s.path = path
	return nil
}

// abort returns an Unlocking store to the state it came from.
func (s *Store) abort(to domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateUnlocking {
		return
	}
	s.state = to
	if to == domain.StateClosed {
		release(s.path)
		s.path = ""
	}
}

func (s *Store) unlockFile(ctx context.Context, path string, password []byte) (domain.Container, []byte, domain.Vault, error) {
	if lim := s.opts.UnlockLimiter; lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return domain.Container{}, nil, domain.Vault{}, pkgerrors.Wrap(err, "unlock rate limit")
		}
	}
	c, key, v, err := s.decrypt(ctx, path, password)
	s.opts.Metrics.UnlockAttempt.WithLabelValues(result(err)).Inc()
	if err != nil {
		s.opts.Logger.Warn("unlock failed", "path", path, "kind", domain.KindOf(err).String())
	}
	return c, key, v, err
}

func (s *Store) decrypt(ctx context.Context, path string, password []byte) (domain.Container, []byte, domain.Vault, error) {
	b, err := readFile(path)
	if err != nil {
		return domain.Container{}, nil, domain.Vault{}, err
	}
	c, err := codec.DecodeContainer(b)
	if err != nil {
		return domain.Container{}, nil, domain.Vault{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Container{}, nil, domain.Vault{}, err
	}
	key, err := crypto.DeriveKey(password, c.KDF)
	if err != nil {
		return domain.Container{}, nil, domain.Vault{}, err
	}
	v, err := codec.Unwrap(c, key)
	if err != nil {
		crypto.Wipe(key)
		return domain.Container{}, nil, domain.Vault{}, err
	}
	return c, key, v, nil
}

// activate installs a freshly unlocked vault. key is moved into locked memory
// and wiped.
func (s *Store) activate(c domain.Container, key []byte, v domain.Vault) error {
	s.mu.Lock()
	if s.state != domain.StateUnlocking {
		// Closed while the key was being derived.
		s.mu.Unlock()
		crypto.Wipe(key)
		lifecycle.ScrubVault(&v)
		return domain.ErrClosed
	}
	s.key = crypto.NewSecretKey(key)
	s.header = c.Header()
	s.vault = v
	s.epoch++
	s.repo = entries.New(session{s: s, epoch: s.epoch}, &s.vault, s.opts.Now)
	s.gen, s.savedGen = 0, 0
	if codec.NeedsMigration(c.Version) {
		s.gen = 1
	}
	s.state = domain.StateUnlocked
	s.mu.Unlock()

	s.startAutosave()
	return nil
}

// Save writes the vault if the store is Unlocked. A failed save leaves the
// previous file in place and the vault dirty.
func (s *Store) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.save(ctx, "save")
}

// save must be called with saveMu held.
func (s *Store) save(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	if err := s.requireUnlocked(); err != nil {
		s.mu.RUnlock()
		return err
	}
	snap := s.vault.Clone()
	gen, hdr, path, key := s.gen, s.header, s.path, s.key
	s.mu.RUnlock()

	c, err := s.write(op, path, snap, key.Bytes(), hdr)
	s.opts.Metrics.Saves.WithLabelValues(result(err)).Inc()
	if err != nil {
		s.opts.Logger.Warn("save failed", "op", op, "path", path, "err", err)
		return err
	}

	s.mu.Lock()
	s.savedGen = gen
	s.header = c.Header()
	s.mu.Unlock()
	s.opts.Logger.Debug("vault saved", "op", op, "path", path, "entries", len(snap.Entries))
	return nil
}

func (s *Store) write(op, path string, v domain.Vault, key []byte, hdr domain.Container) (domain.Container, error) {
	c, err := codec.Wrap(v, key, hdr)
	if err != nil {
		return domain.Container{}, err
	}
	b, err := codec.EncodeContainer(c)
	if err != nil {
		return domain.Container{}, err
	}
	if err := writeFile(path, b, s.rename); err != nil {
		return domain.Container{}, domain.E(domain.KindIO, op, err)
	}
	return c, nil
}

// ChangePassword re-keys the vault under newPassword with a fresh salt and
// writes it. kdf selects algorithm and cost; a zero value uses the store
// options. On failure the old password stays valid.
func (s *Store) ChangePassword(ctx context.Context, newPassword []byte, kdf domain.KDFParams) error {
	const op = "change password"
	if len(newPassword) == 0 {
		return domain.Errorf(domain.KindValidation, op, "master password is required")
	}
	if kdf.Algorithm == "" {
		kdf = s.opts.KDF
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	if err := s.requireUnlocked(); err != nil {
		s.mu.RUnlock()
		return err
	}
	snap := s.vault.Clone()
	gen, hdr, path := s.gen, s.header, s.path
	s.mu.RUnlock()

	params, err := crypto.NewKDFParams(kdf.Algorithm, kdf.Iterations)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := crypto.DeriveKey(newPassword, params)
	if err != nil {
		return err
	}
	hdr.Salt = append([]byte(nil), params.Salt...)
	hdr.KDF = params
	c, err := s.write(op, path, snap, key, hdr)
	s.opts.Metrics.Saves.WithLabelValues(result(err)).Inc()
	if err != nil {
		crypto.Wipe(key)
		return err
	}

	s.mu.Lock()
	old := s.key
	s.key = crypto.NewSecretKey(key)
	s.header = c.Header()
	s.savedGen = gen
	s.mu.Unlock()
	old.Destroy()
	s.opts.Logger.Info("master password changed", "path", path, "kdf", params.Algorithm)
	return nil
}

// Lock applies the lock policy, then drops the key and the decrypted vault.
// Under LockFlush a failed save aborts the lock and the store stays Unlocked.
func (s *Store) Lock(ctx context.Context) error {
	s.stopAutosave()
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	for {
		s.mu.Lock()
		switch s.state {
		case domain.StateLocked:
			s.mu.Unlock()
			return nil
		case domain.StateClosed:
			s.mu.Unlock()
			return domain.ErrClosed
		case domain.StateUnlocking:
			s.mu.Unlock()
			return domain.ErrLocked
		}
		dirty := s.gen != s.savedGen
		if !dirty || s.opts.LockPolicy == domain.LockDiscard {
			s.teardownLocked()
			s.state = domain.StateLocked
			path := s.path
			s.mu.Unlock()
			s.opts.Logger.Info("vault locked", "path", path, "discarded", dirty)
			return nil
		}
		s.mu.Unlock()

		if err := s.save(ctx, "lock"); err != nil {
			s.startAutosave()
			return err
		}
	}
}

// Close drops all session state and releases the path. Pending changes are
// not saved; callers wanting them kept call Save or Lock first.
func (s *Store) Close() error {
	s.stopAutosave()
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateClosed {
		return nil
	}
	if s.gen != s.savedGen {
		s.opts.Logger.Warn("closing with unsaved changes", "path", s.path)
	}
	path := s.path
	s.teardownLocked()
	release(path)
	s.path = ""
	s.header = domain.Container{}
	s.state = domain.StateClosed
	s.opts.Logger.Info("vault closed", "path", path)
	return nil
}

// teardownLocked must be called with saveMu and mu held.
func (s *Store) teardownLocked() {
	s.key.Destroy()
	s.key = nil
	s.repo.Release()
	lifecycle.ScrubVault(&s.vault)
	s.epoch++
	s.gen, s.savedGen = 0, 0
}

func (s *Store) requireUnlocked() error {
	switch s.state {
	case domain.StateUnlocked:
		return nil
	case domain.StateClosed:
		return domain.ErrClosed
	default:
		return domain.ErrLocked
	}
}

// State returns the current lifecycle state.
func (s *Store) State() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Path returns the absolute path of the held vault, or "" when Closed.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// IsDirty reports whether the unlocked vault has unsaved changes.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == domain.StateUnlocked && s.gen != s.savedGen
}

// Header returns the container header of the held vault.
func (s *Store) Header() domain.Container {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.header.Header()
}

// Entries returns the repository of the current session. It fails with
// domain.ErrLocked once the session locks, even if the store is unlocked
// again later.
func (s *Store) Entries() domain.EntryRepository {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo
}

// Compile-time assertion that Store implements domain.VaultSession.
var _ domain.VaultSession = (*Store)(nil)
