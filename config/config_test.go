package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig("")

	assert.Equal(t, "Storefront", cfg.System.Appid)
	assert.Equal(t, int64(1000), cfg.Session.AuthLatencyMs)
	assert.Equal(t, "SF", cfg.Session.OrderPrefix)
	assert.Equal(t, "storefront.db", cfg.Storage.Filename)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yml")
	data := `
system:
  workdir: /tmp/sfstate
session:
  auth_latency_ms: 250
  order_prefix: JM
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg := LoadConfig(path)
	assert.Equal(t, "/tmp/sfstate", cfg.System.Workdir)
	assert.Equal(t, int64(250), cfg.Session.AuthLatencyMs)
	assert.Equal(t, "JM", cfg.Session.OrderPrefix)
	// untouched sections keep defaults
	assert.Equal(t, "TRK", cfg.Session.TrackingPrefix)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("STOREFRONT_SESSION_AUTH_LATENCY_MS", "0")
	t.Setenv("STOREFRONT_SYSTEM_WORKDIR", "/tmp/sfenv")

	cfg := LoadConfig("")
	assert.Equal(t, int64(0), cfg.Session.AuthLatencyMs)
	assert.Equal(t, "/tmp/sfenv", cfg.System.Workdir)
}

func TestStorageFile(t *testing.T) {
	cfg := LoadConfig("")
	cfg.System.Workdir = "/tmp/sf"
	assert.Equal(t, filepath.Join("/tmp/sf", "storefront.db"), cfg.StorageFile())
}
