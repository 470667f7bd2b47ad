package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id             BIGSERIAL PRIMARY KEY,
		name           VARCHAR(200) NOT NULL,
		quantity       NUMERIC(18,3) NOT NULL DEFAULT 0,
		unit           VARCHAR(32) NOT NULL DEFAULT 'pcs',
		expiry_date    DATE,
		created_at_utc TIMESTAMPTZ NOT NULL,
		updated_at_utc TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id            BIGSERIAL PRIMARY KEY,
		item_id       BIGINT REFERENCES items(id) ON DELETE SET NULL,
		type          VARCHAR(16) NOT NULL,
		quantity      NUMERIC(18,3) NOT NULL,
		reason        VARCHAR(256),
		"user"        VARCHAR(128),
		timestamp_utc TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ix_stock_movements_item_ts ON stock_movements (item_id, timestamp_utc)`,
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
