package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoPathIsNop(t *testing.T) {
	logger, err := New("", false)
	require.NoError(t, err)
	logger.Info("dropped")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubedeck.log")

	logger, err := New(path, false)
	require.NoError(t, err)
	logger.Info("refresh cycle complete")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "refresh cycle complete")
}

func TestNew_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubedeck.log")

	logger, err := New(path, true)
	require.NoError(t, err)
	logger.Debug("tick skipped")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tick skipped")
}
