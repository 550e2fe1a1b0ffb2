package store

import (
	"errors"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"

	"svault/internal/domain"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// readFile reads the vault at path.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.E(domain.KindIO, "open", pkgerrors.Wrapf(err, "no vault at %s", path))
	}
	if err != nil {
		return nil, domain.E(domain.KindIO, "open", pkgerrors.Wrap(err, "read vault"))
	}
	return b, nil
}

// writeTemp writes b to a synced temporary file next to path and returns its
// name. The caller owns the file.
func writeTemp(path string, b []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", pkgerrors.Wrap(err, "create vault directory")
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", pkgerrors.Wrap(err, "create temp file")
	}
	tmp := f.Name()
	fail := func(err error, msg string) (string, error) {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", pkgerrors.Wrap(err, msg)
	}
	if err := f.Chmod(fileMode); err != nil {
		return fail(err, "chmod temp file")
	}
	if _, err := f.Write(b); err != nil {
		return fail(err, "write temp file")
	}
	if err := f.Sync(); err != nil {
		return fail(err, "sync temp file")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", pkgerrors.Wrap(err, "close temp file")
	}
	return tmp, nil
}

// writeFile replaces path with b via a temp file and rename. If anything
// fails before rename returns, the previous file is untouched.
func writeFile(path string, b []byte, rename func(oldpath, newpath string) error) error {
	tmp, err := writeTemp(path, b)
	if err != nil {
		return err
	}
	// Best-effort cleanup if rename fails.
	defer func() { _ = os.Remove(tmp) }()

	if err := rename(tmp, path); err != nil {
		return pkgerrors.Wrap(err, "replace vault file")
	}
	syncDir(filepath.Dir(path))
	return nil
}

// createFile writes b to path, failing with domain.ErrExists if path is
// already there. The hard link publishes the complete file in one step and
// refuses to replace an existing one.
func createFile(path string, b []byte) error {
	tmp, err := writeTemp(path, b)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()

	if err := os.Link(tmp, path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return domain.ErrExists
		}
		return pkgerrors.Wrap(err, "publish vault file")
	}
	syncDir(filepath.Dir(path))
	return nil
}

func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
