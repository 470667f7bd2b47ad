package database

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kitchen-inventory/pkg/config"
)

// Health resultado del ping.
type Health struct {
	Status  string `json:"status"` // OK | Error
	Message string `json:"message"`
}

// Info descripción de la base de datos para la ventana de diagnóstico y el paquete de soporte.
type Info struct {
	Provider         string `json:"provider"`
	Target           string `json:"target"`
	ProviderVersion  string `json:"provider_version"`
	Health           Health `json:"health"`
	ConnectionString string `json:"connection_string"` // sin credenciales
	LogsDirectory    string `json:"logs_directory"`
	DatabaseFilePath string `json:"database_file_path,omitempty"`
}

// Pinger lo mínimo para comprobar la conexión.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Describe arma Info. p puede ser nil (sin conexión abierta).
func Describe(ctx context.Context, cfg *config.Config, p Pinger) Info {
	db := cfg.DB
	info := Info{
		Provider:         db.Provider,
		Target:           Target(db),
		ProviderVersion:  providerVersion(db.Provider),
		ConnectionString: Redact(db.ConnectionString()),
		LogsDirectory:    cfg.App.LogsDir(),
	}
	if !db.IsPostgres() {
		info.DatabaseFilePath = db.SQLitePath
	}

	switch {
	case p == nil:
		info.Health = Health{Status: "Error", Message: "Cannot connect"}
	default:
		if err := p.Ping(ctx); err != nil {
			info.Health = Health{Status: "Error", Message: err.Error()}
		} else {
			info.Health = Health{Status: "OK", Message: "Connected"}
		}
	}
	return info
}

// Target ruta del archivo SQLite o host:port/base de PostgreSQL.
func Target(db config.DBConfig) string {
	if !db.IsPostgres() {
		if db.SQLitePath == "" || db.SQLitePath == ":memory:" {
			return "(in-memory or unknown)"
		}
		return db.SQLitePath
	}
	pc, err := pgx.ParseConfig(db.ConnectionString())
	if err != nil {
		return "(unknown)"
	}
	name := pc.Database
	if name == "" {
		name = "(unknown)"
	}
	return pc.Host + ":" + strconv.Itoa(int(pc.Port)) + "/" + name
}

// Valor entre comillas simples (libpq, con \' escapado) o hasta el siguiente separador.
var secretKV = regexp.MustCompile(`(?i)\b(password|pwd|username|user id|userid|user)\s*=\s*('(?:[^'\\]|\\.)*'?|[^;&\s]*)`)

// Redact oculta usuario y contraseña en un connection string (URL o clave=valor).
func Redact(cs string) string {
	if strings.TrimSpace(cs) == "" {
		return cs
	}
	if u, err := url.Parse(cs); err == nil && u.Scheme != "" && u.Host != "" {
		hadUser := u.User != nil
		u.User = nil
		u.RawQuery = redactKV(u.RawQuery)
		out := u.String()
		if hadUser {
			out = strings.Replace(out, "://", "://***:***@", 1)
		}
		return out
	}
	return redactKV(cs)
}

func redactKV(s string) string {
	return secretKV.ReplaceAllStringFunc(s, func(m string) string {
		key := m[:strings.Index(m, "=")]
		return strings.TrimSpace(key) + "=***"
	})
}

func providerVersion(provider string) string {
	mod := "gorm.io/driver/sqlite"
	if provider == config.ProviderPostgres {
		mod = "github.com/jackc/pgx/v5"
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, d := range bi.Deps {
		if d.Path == mod {
			return fmt.Sprintf("%s %s", mod, d.Version)
		}
	}
	return "unknown"
}
