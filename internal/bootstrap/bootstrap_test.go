package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitchen-inventory/pkg/config"
)

func TestNew_SQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		App: config.AppConfig{Env: "production", Name: "kitchen", User: "ana", DataDir: dir},
		DB:  config.DBConfig{Provider: config.ProviderSQLite, SQLitePath: filepath.Join(dir, "kitchen.db")},
		Log: config.LogConfig{Level: "error", ToFile: true},
	}

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "ana", a.Inventory.User())
	assert.NoError(t, a.Store.Ping(context.Background()))
	assert.NoError(t, a.Close())

	_, err = os.Stat(filepath.Join(dir, "kitchen.db"))
	assert.NoError(t, err)
	_, err = os.Stat(cfg.App.LogsDir())
	assert.NoError(t, err)
}

func TestNew_ProveedorDesconocido(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{DataDir: t.TempDir()},
		DB:  config.DBConfig{Provider: "oracle"},
		Log: config.LogConfig{Level: "error"},
	}
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
