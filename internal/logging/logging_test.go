package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homebook.log")

	log, err := New("prod", path)
	require.NoError(t, err)
	log.With("game", "speed-math").Info("session started", "level", 12.5)
	log.Debug("dropped in prod")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"session started"`)
	assert.Contains(t, string(data), `"game":"speed-math"`)
	assert.Contains(t, string(data), `"level":12.5`)
	assert.NotContains(t, string(data), "dropped in prod")
}

func TestNew_DevModeLogsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.log")

	log, err := New("dev", path)
	require.NoError(t, err)
	log.Debug("countdown tick", "remaining", 2)
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "countdown tick")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Warn("ignored", "k", "v")
	log.Error("ignored")
	log.Sync()
}
