package codec

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svault/internal/crypto"
	"svault/internal/domain"
)

func testKDF(t *testing.T) domain.KDFParams {
	t.Helper()
	p, err := crypto.NewKDFParams(domain.KDFPBKDF2SHA256, 1000)
	require.NoError(t, err)
	return p
}

func testKey(t *testing.T) []byte {
	t.Helper()
	k, err := crypto.RandomBytes(crypto.KeyBytes)
	require.NoError(t, err)
	return k
}

func sampleVault() domain.Vault {
	now := time.Date(2026, 10, 15, 10, 0, 0, 123456789, time.UTC)
	return domain.Vault{
		Version:    CurrentVersion,
		Created:    now,
		Categories: domain.DefaultCategories(),
		Entries: []domain.Entry{
			{ID: 2, Title: "mail", Username: "bob", Password: "s3cret", URL: "https://mail.example", Category: "Email", Created: now, Modified: now},
			{ID: 1, Title: "bank", Username: "alice", Password: "Tr0ub4dor&3", Category: "Banking", Notes: "pin in drawer", Created: now, Modified: now.Add(time.Hour)},
		},
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	v := sampleVault()
	b, err := Serialize(v)
	require.NoError(t, err)

	got, err := Deserialize(b)
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, domain.EntryID(1), got.Entries[0].ID, "entries are ordered by id")
	assert.Equal(t, v.Entries[1], got.Entries[0])
	assert.Equal(t, v.Entries[0], got.Entries[1])
	assert.Equal(t, v.Categories, got.Categories)
	assert.True(t, v.Created.Equal(got.Created))

	again, err := Serialize(got)
	require.NoError(t, err)
	assert.Equal(t, b, again, "serialization is canonical")
}

func TestDeserializeRejects(t *testing.T) {
	cases := map[string]string{
		"not json":           `{`,
		"missing entries":    `{"version":"2.0.0","created":"2026-01-01T00:00:00Z","categories":[]}`,
		"duplicate ids":      `{"version":"2.0.0","created":"2026-01-01T00:00:00Z","categories":["General"],"entries":[` + entryJSON(1, "General") + `,` + entryJSON(1, "General") + `]}`,
		"unknown category":   `{"version":"2.0.0","created":"2026-01-01T00:00:00Z","categories":["General"],"entries":[` + entryJSON(1, "Work") + `]}`,
		"duplicate category": `{"version":"2.0.0","created":"2026-01-01T00:00:00Z","categories":["Work","Work"],"entries":[]}`,
		"zero id":            `{"version":"2.0.0","created":"2026-01-01T00:00:00Z","categories":["General"],"entries":[` + entryJSON(0, "General") + `]}`,
		"wrong field type":   `{"version":"2.0.0","created":"2026-01-01T00:00:00Z","categories":["General"],"entries":[{"id":"x"}]}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Deserialize([]byte(in))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFormat)
		})
	}
}

func entryJSON(id int, category string) string {
	b, _ := json.Marshal(map[string]any{
		"id": id, "title": "t", "username": "u", "password": "p", "url": "",
		"category": category, "notes": "", "created": "2026-01-01T00:00:00Z", "modified": "2026-01-01T00:00:00Z",
	})
	return string(b)
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	key := testKey(t)
	hdr := NewHeader(testKDF(t), time.Now())

	c, err := Wrap(sampleVault(), key, hdr)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, c.Version)
	assert.Equal(t, domain.ContainerFormat, c.Format)
	assert.Equal(t, hdr.ID, c.ID)

	b, err := EncodeContainer(c)
	require.NoError(t, err)
	decoded, err := DecodeContainer(b)
	require.NoError(t, err)

	v, err := Unwrap(decoded, key)
	require.NoError(t, err)
	require.Len(t, v.Entries, 2)
	assert.Equal(t, "Tr0ub4dor&3", v.Entries[0].Password)
}

func TestUnwrapWrongKey(t *testing.T) {
	c, err := Wrap(sampleVault(), testKey(t), NewHeader(testKDF(t), time.Now()))
	require.NoError(t, err)

	_, err = Unwrap(c, testKey(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Contains(t, err.Error(), domain.MsgCannotOpen)
}

func TestUnwrapDetectsEveryBitFlip(t *testing.T) {
	key := testKey(t)
	v := domain.Vault{Version: CurrentVersion, Created: time.Now(), Categories: []string{"General"}, Entries: []domain.Entry{}}
	c, err := Wrap(v, key, NewHeader(testKDF(t), time.Now()))
	require.NoError(t, err)

	for i := range c.Ciphertext {
		for bit := 0; bit < 8; bit++ {
			tampered := c
			tampered.Ciphertext = append([]byte(nil), c.Ciphertext...)
			tampered.Ciphertext[i] ^= 1 << bit
			_, err := Unwrap(tampered, key)
			require.ErrorIs(t, err, domain.ErrAuthentication, "byte %d bit %d", i, bit)
		}
	}
	for i := range c.Salt {
		tampered := c
		tampered.Salt = append([]byte(nil), c.Salt...)
		tampered.Salt[i] ^= 0x01
		_, err := Unwrap(tampered, key)
		require.ErrorIs(t, err, domain.ErrAuthentication, "salt byte %d", i)
	}
}

func TestUnwrapDetectsHeaderTampering(t *testing.T) {
	key := testKey(t)
	c, err := Wrap(sampleVault(), key, NewHeader(testKDF(t), time.Now()))
	require.NoError(t, err)

	mutations := map[string]func(*domain.Container){
		"id":         func(c *domain.Container) { c.ID = "00000000-0000-0000-0000-000000000000" },
		"created":    func(c *domain.Container) { c.Created = c.Created.Add(time.Second) },
		"iterations": func(c *domain.Container) { c.KDF.Iterations++ },
		"algorithm":  func(c *domain.Container) { c.KDF.Algorithm = domain.KDFScrypt },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			tampered := c
			mutate(&tampered)
			_, err := Unwrap(tampered, key)
			assert.ErrorIs(t, err, domain.ErrAuthentication)
		})
	}
}

func TestDecodeContainerRejects(t *testing.T) {
	c, err := Wrap(sampleVault(), testKey(t), NewHeader(testKDF(t), time.Now()))
	require.NoError(t, err)
	good, err := EncodeContainer(c)
	require.NoError(t, err)

	edit := func(f func(m map[string]any)) []byte {
		var m map[string]any
		require.NoError(t, json.Unmarshal(good, &m))
		f(m)
		b, err := json.Marshal(m)
		require.NoError(t, err)
		return b
	}

	cases := map[string][]byte{
		"garbage":       []byte("not a vault"),
		"newer version": edit(func(m map[string]any) { m["version"] = "3.0.0" }),
		"future minor":  edit(func(m map[string]any) { m["version"] = "2.1.0" }),
		"bad version":   edit(func(m map[string]any) { m["version"] = "two" }),
		"format tag":    edit(func(m map[string]any) { m["format"] = "other" }),
		"bad id":        edit(func(m map[string]any) { m["id"] = "nope" }),
		"short salt":    edit(func(m map[string]any) { m["salt"] = "AAAA" }),
		"no kdf":        edit(func(m map[string]any) { delete(m, "kdf") }),
		"no ciphertext": edit(func(m map[string]any) { delete(m, "ciphertext") }),
		"unknown kdf":   edit(func(m map[string]any) { m["kdf"] = map[string]any{"algorithm": "md5", "iterations": 1} }),
		"bad created":   edit(func(m map[string]any) { m["created"] = "yesterday" }),
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeContainer(b)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFormat)
		})
	}
}

func TestUnsupportedVersionMessage(t *testing.T) {
	_, err := Unwrap(domain.Container{Version: "9.0.0"}, testKey(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupported)
	assert.Contains(t, err.Error(), "unsupported vault version")
}

func TestMalformedVersionIsNotUnsupported(t *testing.T) {
	_, err := Unwrap(domain.Container{Version: "two"}, testKey(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFormat)
	assert.NotErrorIs(t, err, domain.ErrUnsupported)
	assert.Contains(t, err.Error(), `malformed vault version "two"`)
}

func TestNeedsMigration(t *testing.T) {
	assert.True(t, NeedsMigration("1.3"))
	assert.False(t, NeedsMigration(CurrentVersion))
	assert.False(t, NeedsMigration("garbage"))
}

// legacyFile lays payload out as a 1.x file: salt followed by a Fernet token
// keyed with the base64url form of key.
func legacyFile(t *testing.T, key []byte, payload string) []byte {
	t.Helper()
	salt, err := crypto.RandomBytes(16)
	require.NoError(t, err)
	k, err := fernet.DecodeKey(base64.URLEncoding.EncodeToString(key))
	require.NoError(t, err)
	tok, err := fernet.EncryptAndSign([]byte(payload), k)
	require.NoError(t, err)
	return append(salt, tok...)
}

func legacyContainer(t *testing.T, key []byte, payload string) domain.Container {
	t.Helper()
	c, err := DecodeContainer(legacyFile(t, key, payload))
	require.NoError(t, err)
	return c
}

func TestUnwrapMigratesLegacyPayload(t *testing.T) {
	key := testKey(t)
	legacy := `{"version":"1.3","created":"2024-05-01T09:30:00.123456",
		"entries":[
			{"id":7,"title":"a","username":"u","password":"p","url":"","category":"","created":"2024-05-01T09:30:00"},
			{"id":7,"title":"b","username":"v","password":"q","url":"","category":"Gaming","notes":"n","created":"garbage"}
		]}`
	c := legacyContainer(t, key, legacy)

	v, err := Unwrap(c, key)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, v.Version)
	require.Len(t, v.Entries, 2)
	assert.Equal(t, domain.EntryID(1), v.Entries[0].ID)
	assert.Equal(t, domain.EntryID(2), v.Entries[1].ID)
	assert.Equal(t, domain.DefaultCategory, v.Entries[0].Category)
	assert.Contains(t, v.Categories, "Gaming")
	assert.Subset(t, v.Categories, domain.DefaultCategories())
	assert.Equal(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), v.Entries[0].Created)
	assert.Equal(t, v.Entries[0].Created, v.Entries[0].Modified)
	assert.Equal(t, v.Created, v.Entries[1].Created, "unparseable timestamps fall back to the vault creation time")

	// Rewrapping upgrades the header to the current format.
	upgraded, err := Wrap(v, key, c.Header())
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, upgraded.Version)
	assert.Equal(t, domain.ContainerFormat, upgraded.Format)
	assert.NotEmpty(t, upgraded.ID)
	assert.True(t, upgraded.Created.Equal(v.Created))
	assert.Equal(t, c.Salt, upgraded.Salt)
	b, err := EncodeContainer(upgraded)
	require.NoError(t, err)
	decoded, err := DecodeContainer(b)
	require.NoError(t, err)
	again, err := Unwrap(decoded, key)
	require.NoError(t, err)
	assert.Len(t, again.Entries, 2)
}

func TestDecodeLegacyFileLayout(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("testdata", "legacy-1.3.svdb"))
	require.NoError(t, err)

	c, err := DecodeContainer(b)
	require.NoError(t, err)
	assert.Equal(t, LegacyVersion, c.Version)
	assert.Empty(t, c.Format)
	assert.Equal(t, b[:16], c.Salt)
	assert.Equal(t, domain.KDFPBKDF2SHA256, c.KDF.Algorithm)
	assert.EqualValues(t, crypto.DefaultPBKDF2Iterations, c.KDF.Iterations)
	assert.True(t, NeedsMigration(c.Version))
}

// The fixture was written the way 1.3 wrote vaults: PBKDF2-SHA256 at 600000
// iterations, the base64url key handed to Fernet, salt then token on disk.
func TestUnwrapLegacyFixture(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("testdata", "legacy-1.3.svdb"))
	require.NoError(t, err)
	c, err := DecodeContainer(b)
	require.NoError(t, err)

	key, err := crypto.DeriveKey([]byte("Tr0ub4dor&3"), c.KDF)
	require.NoError(t, err)
	v, err := Unwrap(c, key)
	require.NoError(t, err)

	require.Len(t, v.Entries, 2)
	e := v.Entries[0]
	assert.Equal(t, domain.EntryID(1), e.ID)
	assert.Equal(t, "Example", e.Title)
	assert.Equal(t, "user@example.com", e.Username)
	assert.Equal(t, "p@ss", e.Password)
	assert.Equal(t, "https://example.com", e.URL)
	assert.Equal(t, domain.DefaultCategory, e.Category)
	assert.Equal(t, time.Date(2024, 3, 9, 14, 21, 7, 512345000, time.UTC), e.Created)
	assert.Equal(t, domain.EntryID(2), v.Entries[1].ID)
	assert.Equal(t, "Gaming", v.Entries[1].Category)
	assert.Equal(t, "old account", v.Entries[1].Notes)
	assert.Contains(t, v.Categories, "Gaming")
	assert.Equal(t, time.Date(2024, 4, 1, 12, 31, 0, 0, time.UTC), v.Created)

	wrong, err := crypto.DeriveKey([]byte("wrong"), c.KDF)
	require.NoError(t, err)
	_, err = Unwrap(c, wrong)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Contains(t, err.Error(), domain.MsgCannotOpen)
}

func TestUnwrapLegacyDetectsTampering(t *testing.T) {
	key := testKey(t)
	c := legacyContainer(t, key, `{"version":"1.3","entries":[]}`)

	for _, i := range []int{10, len(c.Ciphertext) / 2, len(c.Ciphertext) - 4} {
		tampered := c
		tampered.Ciphertext = append([]byte(nil), c.Ciphertext...)
		if tampered.Ciphertext[i] == 'A' {
			tampered.Ciphertext[i] = 'B'
		} else {
			tampered.Ciphertext[i] = 'A'
		}
		_, err := Unwrap(tampered, key)
		assert.ErrorIs(t, err, domain.ErrAuthentication, "token char %d", i)
	}
}

func TestDecodeContainerRejectsJSONLegacyVersion(t *testing.T) {
	c, err := Wrap(sampleVault(), testKey(t), NewHeader(testKDF(t), time.Now()))
	require.NoError(t, err)
	c.Version = "1.3.0"
	b, err := EncodeContainer(c)
	require.NoError(t, err)

	_, err = DecodeContainer(b)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestUnwrapLegacyGarbageIsFormatError(t *testing.T) {
	key := testKey(t)
	_, err := Unwrap(legacyContainer(t, key, `{"entries":"nope"}`), key)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFormat)
	assert.Contains(t, err.Error(), domain.MsgCannotOpen)
}
