package types

import "time"

// ContainerFormat tags every svault file.
const ContainerFormat = "svault"

// KDF algorithm identifiers recorded in the container.
const (
	KDFPBKDF2SHA256 = "pbkdf2-sha256"
	KDFArgon2id     = "argon2id"
	KDFScrypt       = "scrypt"
)

// KDFParams records how the master key was derived from the password.
//
// Iterations is the PBKDF2 iteration count, the argon2id time cost, or the
// scrypt log2(N) depending on Algorithm.
type KDFParams struct {
	Algorithm   string `json:"algorithm"`
	Iterations  uint32 `json:"iterations"`
	MemoryKiB   uint32 `json:"memory_kib,omitempty"`
	Parallelism uint8  `json:"parallelism,omitempty"`
	Salt        []byte `json:"-"`
}

// Container is the on-disk representation of a vault. Nothing in it is
// trusted until the ciphertext authenticates.
type Container struct {
	Format     string
	ID         string
	Version    string
	Created    time.Time
	Salt       []byte
	KDF        KDFParams
	Ciphertext []byte
}

// Header returns the container without its ciphertext.
func (c Container) Header() Container {
	h := c
	h.Salt = append([]byte(nil), c.Salt...)
	h.Ciphertext = nil
	return h
}
