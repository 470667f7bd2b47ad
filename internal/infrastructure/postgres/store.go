package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/kitchen-inventory/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
	"github.com/jhoicas/kitchen-inventory/pkg/config"
)

var _ inventory.Store = (*Store)(nil)

// Store ejecuta callbacks dentro de una transacción PostgreSQL y expone repos sobre el pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el store con el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// OpenStore crea el pool y aplica el esquema.
func OpenStore(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return NewStore(pool), nil
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Items() repository.ItemRepository { return NewItemRepository(s.pool) }

func (s *Store) Movements() repository.StockMovementRepository {
	return NewStockMovementRepository(s.pool)
}

// Ping comprueba la conexión.
func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Close cierra el pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
