package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jhoicas/kitchen-inventory/internal/domain"
	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación sobre SQLite (usable con la base o con una tx de gorm).
type ItemRepo struct {
	db *gorm.DB
}

// NewItemRepository construye el adaptador.
func NewItemRepository(db *gorm.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// List devuelve todos los artículos ordenados por nombre.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	var rows []itemRow
	if err := r.db.WithContext(ctx).Order("name COLLATE NOCASE").Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	list := make([]*entity.Item, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	var row itemRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return row.toEntity(), nil
}

// Create inserta el artículo y le asigna el ID generado.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	row := toItemRow(item)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	item.ID = row.ID
	return nil
}

// Update persiste nombre, cantidad, unidad, caducidad y marca de actualización. CreatedAtUTC no cambia.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	row := toItemRow(item)
	res := r.db.WithContext(ctx).Model(&itemRow{}).Where("id = ?", item.ID).Updates(map[string]any{
		"name":           row.Name,
		"quantity":       row.Quantity,
		"unit":           row.Unit,
		"expiry_date":    row.ExpiryDate,
		"updated_at_utc": row.UpdatedAtUTC,
	})
	if res.Error != nil {
		return fmt.Errorf("update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update item %d: %w", item.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina el artículo; sus movimientos quedan con item_id nulo (ON DELETE SET NULL).
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&itemRow{})
	if res.Error != nil {
		return fmt.Errorf("delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// QuantitiesByIDs lee las cantidades persistidas. SQLite no tiene FOR UPDATE: la tx de escritura
// con una única conexión ya serializa el acceso.
func (r *ItemRepo) QuantitiesByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	out := make(map[int64]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []itemRow
	if err := r.db.WithContext(ctx).Select("id", "quantity").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("quantities by ids: %w", err)
	}
	for _, row := range rows {
		out[row.ID] = row.Quantity
	}
	return out, nil
}
