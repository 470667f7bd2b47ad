package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	// List devuelve todos los artículos ordenados por nombre.
	List(ctx context.Context) ([]*entity.Item, error)
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// Create inserta el artículo y le asigna ID.
	Create(ctx context.Context, item *entity.Item) error
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id int64) error
	// QuantitiesByIDs devuelve la cantidad persistida de los artículos cuyo id está en ids.
	// Dentro de una transacción bloquea las filas leídas cuando el motor lo permite.
	QuantitiesByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error)
}
