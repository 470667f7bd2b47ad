package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre SQLite. Solo inserta y lee.
type StockMovementRepo struct {
	db *gorm.DB
}

// NewStockMovementRepository construye el adaptador.
func NewStockMovementRepository(db *gorm.DB) *StockMovementRepo {
	return &StockMovementRepo{db: db}
}

// Create inserta el movimiento. Si referencia un artículo recién insertado, toma su ID.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	movement.ResolveItemID()
	row := toMovementRow(movement)
	row.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	movement.ID = row.ID
	return nil
}

// List devuelve movimientos del más reciente al más antiguo, con el artículo cargado si aún existe.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	q := r.db.WithContext(ctx).Preload("Item").Order("timestamp_utc DESC").Order("id DESC")
	if filter.ItemID != nil {
		q = q.Where("item_id = ?", *filter.ItemID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var rows []movementRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	list := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
