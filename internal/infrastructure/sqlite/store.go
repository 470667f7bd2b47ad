package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/kitchen-inventory/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
)

var _ inventory.Store = (*Store)(nil)

// Store agrupa la conexión gorm y los repositorios.
type Store struct {
	db *gorm.DB
}

// OpenStore abre la base en path (ver Open).
func OpenStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Run ejecuta fn dentro de una transacción; cualquier error hace rollback de todo.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewItemRepository(tx), NewStockMovementRepository(tx))
	})
}

func (s *Store) Items() repository.ItemRepository { return NewItemRepository(s.db) }

func (s *Store) Movements() repository.StockMovementRepository {
	return NewStockMovementRepository(s.db)
}

// Ping comprueba la conexión.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close cierra la conexión.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}
