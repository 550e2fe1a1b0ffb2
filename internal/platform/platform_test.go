package platform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svault/internal/platform"
)

func TestMemoryClipboard(t *testing.T) {
	var cb platform.MemoryClipboard
	require.NoError(t, cb.WriteAll("x"))
	got, err := cb.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

func TestNewClipboard(t *testing.T) {
	assert.NotNil(t, platform.NewClipboard())
}

func TestDisableCoreDumps(t *testing.T) {
	assert.NoError(t, platform.DisableCoreDumps())
}
