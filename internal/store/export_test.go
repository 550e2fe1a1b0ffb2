package store

// SetRename replaces the rename step of atomic writes.
func SetRename(s *Store, f func(oldpath, newpath string) error) { s.rename = f }

// Held reports whether path is claimed in this process.
func Held(path string) bool {
	p, err := canonicalPath(path)
	if err != nil {
		return false
	}
	claims.Lock()
	defer claims.Unlock()
	return claims.held[p]
}
