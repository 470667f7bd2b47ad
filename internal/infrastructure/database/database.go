// Package database abre el almacenamiento configurado (SQLite o PostgreSQL) y describe su estado.
package database

import (
	"context"
	"fmt"

	"github.com/jhoicas/kitchen-inventory/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/sqlite"
	"github.com/jhoicas/kitchen-inventory/pkg/config"
)

// Store almacenamiento abierto: repositorios, transacciones, ping y cierre.
type Store interface {
	inventory.Store
	Ping(ctx context.Context) error
	Close() error
}

// Open abre el store según cfg.Provider y aplica el esquema.
func Open(ctx context.Context, cfg config.DBConfig) (Store, error) {
	switch cfg.Provider {
	case config.ProviderPostgres:
		s, err := postgres.OpenStore(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return s, nil
	case config.ProviderSQLite, "":
		s, err := sqlite.OpenStore(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("proveedor de base de datos no soportado: %q", cfg.Provider)
	}
}
