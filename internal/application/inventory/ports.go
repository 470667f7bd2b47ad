package inventory

import (
	"context"

	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo; si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// Store almacenamiento completo: runner transaccional más repositorios de solo lectura fuera de tx.
type Store interface {
	TxRunner
	Items() repository.ItemRepository
	Movements() repository.StockMovementRepository
}
