package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory/internal/domain"
	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, quantity, unit, expiry_date, created_at_utc, updated_at_utc`

// ItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	if err := row.Scan(&it.ID, &it.Name, &it.Quantity, &it.Unit, &it.ExpiryDate, &it.CreatedAtUTC, &it.UpdatedAtUTC); err != nil {
		return nil, err
	}
	it.CreatedAtUTC = it.CreatedAtUTC.UTC()
	if it.UpdatedAtUTC != nil {
		u := it.UpdatedAtUTC.UTC()
		it.UpdatedAtUTC = &u
	}
	if it.ExpiryDate != nil {
		d := entity.DateOnly(*it.ExpiryDate)
		it.ExpiryDate = &d
	}
	return &it, nil
}

// List devuelve todos los artículos ordenados por nombre.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY lower(name), id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Create inserta el artículo y le asigna el ID generado.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (name, quantity, unit, expiry_date, created_at_utc, updated_at_utc)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		item.Name, item.Quantity, item.Unit, dateArg(item.ExpiryDate), item.CreatedAtUTC.UTC(), item.UpdatedAtUTC,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// Update persiste nombre, cantidad, unidad, caducidad y marca de actualización. CreatedAtUTC no cambia.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, quantity = $3, unit = $4, expiry_date = $5, updated_at_utc = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Quantity, item.Unit, dateArg(item.ExpiryDate), item.UpdatedAtUTC,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update item %d: %w", item.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina el artículo; sus movimientos quedan con item_id nulo (ON DELETE SET NULL).
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// QuantitiesByIDs lee las cantidades y bloquea las filas (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *ItemRepo) QuantitiesByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	out := make(map[int64]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT id, quantity FROM items WHERE id = ANY($1) FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("quantities by ids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var q decimal.Decimal
		if err := rows.Scan(&id, &q); err != nil {
			return nil, fmt.Errorf("scan quantity: %w", err)
		}
		out[id] = q
	}
	return out, rows.Err()
}

// dateArg envía la caducidad como fecha sin hora.
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return entity.DateOnly(*t)
}
