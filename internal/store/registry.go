package store

import (
	"path/filepath"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"svault/internal/domain"
)

// claims records which vault paths are held by a Store in this process.
var claims = struct {
	sync.Mutex
	held map[string]bool
}{held: map[string]bool{}}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", domain.E(domain.KindIO, "resolve path", pkgerrors.Wrap(err, path))
	}
	return filepath.Clean(abs), nil
}

// claim reserves path or fails with domain.ErrAlreadyOpen.
func claim(path string) error {
	claims.Lock()
	defer claims.Unlock()
	if claims.held[path] {
		return domain.ErrAlreadyOpen
	}
	claims.held[path] = true
	return nil
}

func release(path string) {
	claims.Lock()
	defer claims.Unlock()
	delete(claims.held, path)
}
