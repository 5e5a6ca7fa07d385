package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 60*time.Second, cfg.Generation.Timeout.Std())
	assert.Equal(t, 4, cfg.Generation.MaxConcurrent)
	assert.Equal(t, 30*time.Minute, cfg.History.TTL.Std())
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  read_timeout: 5s
generation:
  timeout: 90s
  max_concurrent: 8
log_level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, 90*time.Second, cfg.Generation.Timeout.Std())
	assert.Equal(t, 8, cfg.Generation.MaxConcurrent)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Untouched sections keep their defaults.
	assert.Equal(t, 2*time.Minute, cfg.Server.WriteTimeout.Std())
	assert.Equal(t, 30*time.Minute, cfg.History.TTL.Std())
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o600))

	t.Setenv("IMAGINE_ADDR", ":7070")
	t.Setenv("IMAGINE_GENERATION_TIMEOUT", "45s")
	t.Setenv("IMAGINE_MAX_CONCURRENT", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 45*time.Second, cfg.Generation.Timeout.Std())
	assert.Equal(t, 2, cfg.Generation.MaxConcurrent)
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation:\n  timeout: soon\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "soon")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadNoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)
}
