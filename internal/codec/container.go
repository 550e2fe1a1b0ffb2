package codec

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"svault/internal/crypto"
	"svault/internal/domain"
)

type kdfFile struct {
	Algorithm   string `json:"algorithm"`
	Iterations  uint32 `json:"iterations"`
	MemoryKiB   uint32 `json:"memory_kib,omitempty"`
	Parallelism uint8  `json:"parallelism,omitempty"`
}

// containerFile is the JSON document on disk. []byte fields travel as base64.
type containerFile struct {
	Format     string   `json:"format,omitempty"`
	ID         string   `json:"id,omitempty"`
	Version    string   `json:"version"`
	Created    string   `json:"created"`
	Salt       []byte   `json:"salt"`
	KDF        *kdfFile `json:"kdf,omitempty"`
	Ciphertext []byte   `json:"ciphertext"`
}

// EncodeContainer renders c as the on-disk JSON document.
func EncodeContainer(c domain.Container) ([]byte, error) {
	f := containerFile{
		Format:  c.Format,
		ID:      c.ID,
		Version: c.Version,
		Created: c.Created.UTC().Format(time.RFC3339Nano),
		Salt:    c.Salt,
		KDF: &kdfFile{
			Algorithm:   c.KDF.Algorithm,
			Iterations:  c.KDF.Iterations,
			MemoryKiB:   c.KDF.MemoryKiB,
			Parallelism: c.KDF.Parallelism,
		},
		Ciphertext: c.Ciphertext,
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, domain.E(domain.KindFormat, "encode container", err)
	}
	return append(b, '\n'), nil
}

// DecodeContainer parses the on-disk document and runs every check that can
// happen before decryption. Nothing in the result is authenticated yet.
// Legacy 1.x files are recognised by their binary layout.
func DecodeContainer(b []byte) (domain.Container, error) {
	const op = "decode container"
	if isLegacyFile(b) {
		return decodeLegacy(b), nil
	}
	var f containerFile
	if err := json.Unmarshal(b, &f); err != nil {
		return domain.Container{}, domain.E(domain.KindFormat, op, errors.Wrap(err, "not a vault file"))
	}
	if err := checkVersion(op, f.Version); err != nil {
		return domain.Container{}, err
	}
	if major(f.Version) != majorCurrent {
		return domain.Container{}, domain.Errorf(domain.KindFormat, op, "version %s is not a JSON container", f.Version)
	}
	created, err := time.Parse(time.RFC3339Nano, f.Created)
	if err != nil {
		return domain.Container{}, domain.E(domain.KindFormat, op, errors.Wrap(err, "created timestamp"))
	}
	c := domain.Container{
		Format:     f.Format,
		ID:         f.ID,
		Version:    f.Version,
		Created:    created.UTC(),
		Salt:       f.Salt,
		Ciphertext: f.Ciphertext,
	}
	if len(c.Ciphertext) == 0 {
		return domain.Container{}, domain.Errorf(domain.KindFormat, op, "missing ciphertext")
	}

	if f.Format != domain.ContainerFormat {
		return domain.Container{}, domain.Errorf(domain.KindFormat, op, "unknown format tag %q", f.Format)
	}
	if _, err := uuid.Parse(f.ID); err != nil {
		return domain.Container{}, domain.E(domain.KindFormat, op, errors.Wrap(err, "vault id"))
	}
	if f.KDF == nil {
		return domain.Container{}, domain.Errorf(domain.KindFormat, op, "missing kdf block")
	}
	c.KDF = domain.KDFParams{
		Algorithm:   f.KDF.Algorithm,
		Iterations:  f.KDF.Iterations,
		MemoryKiB:   f.KDF.MemoryKiB,
		Parallelism: f.KDF.Parallelism,
	}
	c.KDF.Salt = c.Salt
	if err := crypto.ValidateKDFParams(c.KDF); err != nil {
		return domain.Container{}, domain.E(domain.KindFormat, op, err)
	}
	return c, nil
}

// headerAAD binds every header field to the ciphertext.
func headerAAD(c domain.Container) []byte {
	var buf bytes.Buffer
	field := func(b []byte) {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(b)))
		buf.Write(n[:])
		buf.Write(b)
	}
	field([]byte(c.Format))
	field([]byte(c.ID))
	field([]byte(c.Version))
	field([]byte(c.Created.UTC().Format(time.RFC3339Nano)))
	field(c.Salt)
	field([]byte(c.KDF.Algorithm))
	var cost [9]byte
	binary.BigEndian.PutUint32(cost[0:4], c.KDF.Iterations)
	binary.BigEndian.PutUint32(cost[4:8], c.KDF.MemoryKiB)
	cost[8] = c.KDF.Parallelism
	field(cost[:])
	return buf.Bytes()
}

// NewHeader returns a fresh current-format header for kdf. The salt travels
// inside kdf.
func NewHeader(kdf domain.KDFParams, now time.Time) domain.Container {
	return domain.Container{
		Format:  domain.ContainerFormat,
		ID:      uuid.NewString(),
		Version: CurrentVersion,
		Created: now.UTC(),
		Salt:    append([]byte(nil), kdf.Salt...),
		KDF:     kdf,
	}
}
