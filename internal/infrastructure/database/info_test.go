package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitchen-inventory/pkg/config"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestRedact(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"postgres://chef:secret@db:5432/pantry?sslmode=disable", "postgres://***:***@db:5432/pantry?sslmode=disable"},
		{"host=db port=5432 user=chef password=secret dbname=pantry", "host=db port=5432 user=*** password=*** dbname=pantry"},
		{"Host=db;Username=chef;Password=secret;Database=pantry", "Host=db;Username=***;Password=***;Database=pantry"},
		{"/var/lib/kitchen.db", "/var/lib/kitchen.db"},
		{`host=db user='chef x' password='a b\'c; d' dbname=pantry`, "host=db user=*** password=*** dbname=pantry"},
		{"password='sin cierre", "password=***"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Redact(tc.in), tc.in)
	}
}

func TestTarget(t *testing.T) {
	assert.Equal(t, "/data/kitchen.db", Target(config.DBConfig{Provider: config.ProviderSQLite, SQLitePath: "/data/kitchen.db"}))
	assert.Equal(t, "(in-memory or unknown)", Target(config.DBConfig{Provider: config.ProviderSQLite}))
	assert.Equal(t, "db.local:6543/pantry", Target(config.DBConfig{
		Provider: config.ProviderPostgres, DatabaseURL: "postgres://u:p@db.local:6543/pantry",
	}))
}

func TestDescribe(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{DataDir: "/data"},
		DB:  config.DBConfig{Provider: config.ProviderSQLite, SQLitePath: "/data/kitchen.db"},
	}

	ok := Describe(context.Background(), cfg, fakePinger{})
	assert.Equal(t, Health{Status: "OK", Message: "Connected"}, ok.Health)
	assert.Equal(t, "/data/kitchen.db", ok.DatabaseFilePath)
	assert.Equal(t, filepath.Join("/data", "logs"), ok.LogsDirectory)
	assert.Equal(t, config.ProviderSQLite, ok.Provider)

	bad := Describe(context.Background(), cfg, fakePinger{err: errors.New("boom")})
	assert.Equal(t, "Error", bad.Health.Status)
	assert.Equal(t, "boom", bad.Health.Message)
}

func TestOpen_SQLite(t *testing.T) {
	s, err := Open(context.Background(), config.DBConfig{
		Provider: config.ProviderSQLite, SQLitePath: filepath.Join(t.TempDir(), "k.db"),
	})
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Ping(context.Background()))
}
