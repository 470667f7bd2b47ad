package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/kitchen-inventory/internal/domain"
	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx). Solo inserta y lee.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. Si referencia un artículo recién insertado, toma su ID.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	movement.ResolveItemID()
	query := `
		INSERT INTO stock_movements (item_id, type, quantity, reason, "user", timestamp_utc)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		movement.ItemID, string(movement.Type), movement.Quantity, movement.Reason, movement.User,
		movement.TimestampUTC.UTC(),
	).Scan(&movement.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create stock movement: item %v: %w", movement.ItemID, domain.ErrNotFound)
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List devuelve los movimientos del más reciente al más antiguo, con el nombre del artículo si aún existe.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT m.id, m.item_id, m.type, m.quantity, m.reason, m."user", m.timestamp_utc, i.name
		FROM stock_movements m
		LEFT JOIN items i ON i.id = m.item_id`
	var args []any
	pos := 1
	if filter.ItemID != nil {
		query += fmt.Sprintf(" WHERE m.item_id = $%d", pos)
		args = append(args, *filter.ItemID)
		pos++
	}
	query += " ORDER BY m.timestamp_utc DESC, m.id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, filter.Limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var typ string
		var itemName *string
		if err := rows.Scan(&m.ID, &m.ItemID, &typ, &m.Quantity, &m.Reason, &m.User, &m.TimestampUTC, &itemName); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		m.TimestampUTC = m.TimestampUTC.UTC()
		if m.ItemID != nil && itemName != nil {
			m.Item = &entity.Item{ID: *m.ItemID, Name: *itemName}
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
