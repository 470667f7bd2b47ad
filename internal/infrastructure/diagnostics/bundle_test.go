package diagnostics

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/database"
)

func entries(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = b
	}
	return out
}

func names(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Build
// ─────────────────────────────────────────────────────────────────────────────

func TestBuild_Completo(t *testing.T) {
	dir := t.TempDir()
	logs := filepath.Join(dir, "logs")
	require.NoError(t, os.MkdirAll(logs, 0o755))

	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		p := filepath.Join(logs, fmt.Sprintf("log-202508%02d.txt", i+1))
		require.NoError(t, os.WriteFile(p, []byte("line"), 0o644))
		mt := base.Add(time.Duration(i) * 24 * time.Hour)
		require.NoError(t, os.Chtimes(p, mt, mt))
	}
	require.NoError(t, os.WriteFile(filepath.Join(logs, "other.txt"), []byte("x"), 0o644))

	dbPath := filepath.Join(dir, "kitchen.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("SQLite format 3"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal"), 0o644))

	prefs := filepath.Join(dir, "preferences.json")
	require.NoError(t, os.WriteFile(prefs, []byte(`{"theme":"dark"}`), 0o644))

	b := NewBuilder(nil)
	b.now = func() time.Time { return base }

	data, err := b.Build(Source{
		AppName:         "Kitchen Inventory",
		User:            "ana",
		DataDir:         dir,
		Database:        database.Info{Provider: "sqlite", Target: dbPath, Health: database.Health{Status: "OK"}},
		PreferencesPath: prefs,
		LogsDir:         logs,
		SQLitePath:      dbPath,
	})
	require.NoError(t, err)

	got := entries(t, data)
	assert.Equal(t, []string{
		"database.json",
		"db/kitchen.db",
		"db/kitchen.db-wal",
		"environment.json",
		"logs/log-20250803.txt",
		"logs/log-20250804.txt",
		"logs/log-20250805.txt",
		"logs/log-20250806.txt",
		"logs/log-20250807.txt",
		"preferences.json",
	}, names(got))

	var env Environment
	require.NoError(t, json.Unmarshal(got["environment.json"], &env))
	assert.Equal(t, "ana", env.User)
	assert.NotEmpty(t, env.BundleID)
	assert.True(t, env.CreatedAt.Equal(base))

	var info database.Info
	require.NoError(t, json.Unmarshal(got["database.json"], &info))
	assert.Equal(t, "OK", info.Health.Status)
	assert.Equal(t, `{"theme":"dark"}`, string(got["preferences.json"]))
}

func TestBuild_PartesOpcionalesAusentes(t *testing.T) {
	dir := t.TempDir()
	data, err := NewBuilder(nil).Build(Source{
		Database:        database.Info{Provider: "postgres"},
		PreferencesPath: filepath.Join(dir, "missing.json"),
		LogsDir:         filepath.Join(dir, "nologs"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"database.json", "environment.json"}, names(entries(t, data)))
}
