package codec

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"svault/internal/crypto"
	"svault/internal/domain"
)

// Wrap serializes v and seals it under key. hdr supplies the salt, KDF block,
// id and creation time; the result always carries the current version, so a
// migrated legacy header is upgraded in place.
func Wrap(v domain.Vault, key []byte, hdr domain.Container) (domain.Container, error) {
	const op = "wrap"
	c := hdr.Header()
	c.Version = CurrentVersion
	if c.Format == "" {
		c.Format = domain.ContainerFormat
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Created.IsZero() {
		c.Created = v.Created.UTC()
	}
	c.KDF.Salt = c.Salt

	v.Version = CurrentVersion
	pt, err := Serialize(v)
	if err != nil {
		return domain.Container{}, err
	}
	defer crypto.Wipe(pt)

	ct, err := crypto.Seal(key, pt, headerAAD(c))
	if err != nil {
		return domain.Container{}, domain.E(domain.KindIO, op, errors.Wrap(err, "seal"))
	}
	c.Ciphertext = ct
	return c, nil
}

// Unwrap authenticates and decrypts c with key and decodes the payload.
// A wrong key and a tampered file are indistinguishable to the caller.
func Unwrap(c domain.Container, key []byte) (domain.Vault, error) {
	const op = "unwrap"
	if err := checkVersion(op, c.Version); err != nil {
		return domain.Vault{}, err
	}
	var pt []byte
	var err error
	if isLegacy(c) {
		pt, err = openLegacy(c, key)
	} else {
		pt, err = crypto.Open(key, c.Ciphertext, headerAAD(c))
	}
	if err != nil {
		return domain.Vault{}, &domain.Error{Kind: domain.KindAuthentication, Op: op, Msg: domain.MsgCannotOpen, Err: err}
	}
	defer crypto.Wipe(pt)

	var v domain.Vault
	if isLegacy(c) {
		v, err = migrateV1(pt, time.Now())
	} else {
		v, err = Deserialize(pt)
	}
	if err != nil {
		return domain.Vault{}, &domain.Error{Kind: domain.KindFormat, Op: op, Msg: domain.MsgCannotOpen, Err: err}
	}
	return v, nil
}
