package repository

import (
	"context"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
)

// MovementFilter filtros para listar el libro de movimientos.
type MovementFilter struct {
	ItemID *int64
	Limit  int // 0 = sin límite
}

// StockMovementRepository puerto de persistencia del libro. Solo inserción y lectura:
// los movimientos nunca se modifican ni se eliminan.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve los movimientos del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
