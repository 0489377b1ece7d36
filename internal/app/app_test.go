package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shoplane/storefront/config"
	"github.com/shoplane/storefront/internal/domain"
	"github.com/shoplane/storefront/internal/sessionstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := config.LoadConfig("")
	cfg.System.Workdir = t.TempDir()
	cfg.Logger.FileEnable = false
	cfg.Session.AuthLatencyMs = 0
	return cfg
}

func TestApplicationLifecycle(t *testing.T) {
	cfg := testConfig(t)
	a := NewApplication(cfg)
	require.NoError(t, a.Init(cfg))
	defer a.Release()

	require.NotNil(t, a.Cart())
	require.NotNil(t, a.Wishlist())
	require.NotNil(t, a.Session())
	require.NotNil(t, a.Search())
	require.NotNil(t, a.Checkout())
	assert.False(t, a.Session().IsLoading())
}

func TestStateSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)

	a := NewApplication(cfg)
	require.NoError(t, a.Init(cfg))
	a.Cart().AddItem(domain.CartLine{ID: 1, Name: "Samsung Galaxy A24", Price: 25000, Quantity: 2})
	ok, err := a.Session().Register(context.Background(), sessionstore.Registration{
		FirstName: "Ada", LastName: "Okafor", Email: "a@b.com", Phone: "+234", Password: "x",
	})
	require.NoError(t, err)
	require.True(t, ok)
	a.Release()

	b := NewApplication(cfg)
	require.NoError(t, b.Init(cfg))
	defer b.Release()

	assert.Equal(t, 2, b.Cart().ItemCount())
	require.NotNil(t, b.Session().User())
	assert.Equal(t, "a@b.com", b.Session().User().Email)
}

func TestBackupNow(t *testing.T) {
	cfg := testConfig(t)
	a := NewApplication(cfg)
	require.NoError(t, a.Init(cfg))
	defer a.Release()

	require.NoError(t, a.BackupNow())

	dir := filepath.Join(cfg.System.Workdir, cfg.Storage.BackupDir)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
