// Package diagnostics empaqueta en un ZIP lo necesario para soporte: entorno, base de datos,
// preferencias, últimos logs y la base SQLite.
package diagnostics

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/database"
	"github.com/jhoicas/kitchen-inventory/pkg/logger"
)

// MaxLogFiles cantidad de archivos de log más recientes que se incluyen.
const MaxLogFiles = 5

// Environment contenido de environment.json.
type Environment struct {
	BundleID    string    `json:"bundle_id"`
	CreatedAt   time.Time `json:"created_at_utc"`
	AppName     string    `json:"app_name"`
	AppEnv      string    `json:"app_env"`
	User        string    `json:"user"`
	GoVersion   string    `json:"go_version"`
	OS          string    `json:"os"`
	Arch        string    `json:"arch"`
	NumCPU      int       `json:"num_cpu"`
	Hostname    string    `json:"hostname,omitempty"`
	DataDir     string    `json:"data_dir"`
	ProcessID   int       `json:"process_id"`
	Preferences string    `json:"preferences_path,omitempty"`
}

// Source lo que se empaqueta. Las partes opcionales vacías o ausentes se omiten.
type Source struct {
	AppName         string
	AppEnv          string
	User            string
	DataDir         string
	Database        database.Info
	PreferencesPath string
	LogsDir         string
	SQLitePath      string // vacío si el proveedor no es SQLite
}

// Builder arma el ZIP de diagnóstico.
type Builder struct {
	log *logger.Logger
	now func() time.Time
}

// NewBuilder crea el builder.
func NewBuilder(log *logger.Logger) *Builder {
	if log == nil {
		log = logger.Nop()
	}
	return &Builder{log: log, now: time.Now}
}

// Build devuelve los bytes del ZIP. Solo falla si no se pueden escribir environment.json o database.json.
func (b *Builder) Build(src Source) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	env := Environment{
		BundleID:    uuid.NewString(),
		CreatedAt:   b.now().UTC(),
		AppName:     src.AppName,
		AppEnv:      src.AppEnv,
		User:        src.User,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		NumCPU:      runtime.NumCPU(),
		DataDir:     src.DataDir,
		ProcessID:   os.Getpid(),
		Preferences: src.PreferencesPath,
	}
	if h, err := os.Hostname(); err == nil {
		env.Hostname = h
	}

	if err := writeJSON(zw, "environment.json", env); err != nil {
		return nil, err
	}
	if err := writeJSON(zw, "database.json", src.Database); err != nil {
		return nil, err
	}

	if src.PreferencesPath != "" {
		b.addFile(zw, src.PreferencesPath, "preferences.json")
	}
	for _, p := range recentLogs(src.LogsDir, MaxLogFiles) {
		b.addFile(zw, p, "logs/"+filepath.Base(p))
	}
	if src.SQLitePath != "" {
		for _, suffix := range []string{"", "-wal", "-shm"} {
			p := src.SQLitePath + suffix
			b.addFile(zw, p, "db/"+filepath.Base(p))
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	b.log.Info().Str("bundle_id", env.BundleID).Int("bytes", buf.Len()).Msg("diagnostics bundle built")
	return buf.Bytes(), nil
}

func writeJSON(zw *zip.Writer, name string, v any) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("zip: crear entrada %s: %w", name, err)
	}
	enc := json.NewEncoder(fw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("zip: escribir %s: %w", name, err)
	}
	return nil
}

// addFile copia un archivo al ZIP. Ausente o ilegible se omite con un warning.
func (b *Builder) addFile(zw *zip.Writer, path, name string) {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			b.log.Warn().Err(err).Str("path", path).Msg("diagnostics: skipped file")
		}
		return
	}
	defer f.Close()

	fw, err := zw.Create(name)
	if err != nil {
		b.log.Warn().Err(err).Str("entry", name).Msg("diagnostics: skipped entry")
		return
	}
	if _, err := io.Copy(fw, f); err != nil {
		b.log.Warn().Err(err).Str("path", path).Msg("diagnostics: partial copy")
	}
}

// recentLogs los n archivos log-*.txt más recientes por fecha de modificación.
func recentLogs(dir string, n int) []string {
	if dir == "" {
		return nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, logger.FilePattern))
	if err != nil || len(matches) == 0 {
		return nil
	}
	type entry struct {
		path string
		mod  time.Time
	}
	entries := make([]entry, 0, len(matches))
	for _, m := range matches {
		st, err := os.Stat(m)
		if err != nil || st.IsDir() {
			continue
		}
		entries = append(entries, entry{m, st.ModTime()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].mod.After(entries[j].mod) })
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.path
	}
	return out
}
