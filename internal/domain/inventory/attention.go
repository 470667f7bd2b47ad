package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
)

// Umbrales por defecto para resaltar artículos.
const (
	DefaultLowStockThreshold = 5
	DefaultExpiringSoonDays  = 7
)

// AttentionRule servicio de dominio: un artículo requiere atención si tiene poco stock
// (Quantity < LowStockThreshold) o caduca dentro de ExpiringSoonDays días (incluye los ya caducados).
type AttentionRule struct {
	LowStockThreshold decimal.Decimal
	ExpiringSoonDays  int
}

// DefaultAttentionRule regla con los umbrales por defecto.
func DefaultAttentionRule() AttentionRule {
	return AttentionRule{
		LowStockThreshold: decimal.NewFromInt(DefaultLowStockThreshold),
		ExpiringSoonDays:  DefaultExpiringSoonDays,
	}
}

// LowStock indica si la cantidad está por debajo del umbral.
func (r AttentionRule) LowStock(it *entity.Item) bool {
	return it.Quantity.LessThan(r.LowStockThreshold)
}

// ExpiringSoon indica si la caducidad cae en o antes de today + ExpiringSoonDays.
func (r AttentionRule) ExpiringSoon(it *entity.Item, today time.Time) bool {
	if it.ExpiryDate == nil {
		return false
	}
	limit := entity.DateOnly(today).AddDate(0, 0, r.ExpiringSoonDays)
	return !entity.DateOnly(*it.ExpiryDate).After(limit)
}

// NeedsAttention combina ambas condiciones.
func (r AttentionRule) NeedsAttention(it *entity.Item, today time.Time) bool {
	return r.LowStock(it) || r.ExpiringSoon(it, today)
}
