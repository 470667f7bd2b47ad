package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/kitchen-inventory/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory/internal/domain"
	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/inventory"
)

// ItemsFromInput convierte el body de PUT /api/items en artículos propuestos.
// La fecha de caducidad debe venir como yyyy-MM-dd; vacía = sin caducidad.
func ItemsFromInput(in []dto.ItemInput) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(in))
	for i, r := range in {
		it := &entity.Item{
			ID:       r.ID,
			Name:     strings.TrimSpace(r.Name),
			Quantity: r.Quantity,
			Unit:     strings.TrimSpace(r.Unit),
		}
		if it.Unit == "" {
			it.Unit = entity.DefaultUnit
		}
		if r.ExpiryDate != nil && strings.TrimSpace(*r.ExpiryDate) != "" {
			d, err := time.Parse(entity.ExpiryDateForm, strings.TrimSpace(*r.ExpiryDate))
			if err != nil {
				return nil, fmt.Errorf("%w: items[%d].expiry_date %q", domain.ErrInvalidInput, i, *r.ExpiryDate)
			}
			it.ExpiryDate = &d
		}
		out = append(out, it)
	}
	return out, nil
}

// ItemToDTO artículo con sus banderas de atención calculadas para today.
func ItemToDTO(it *entity.Item, rule inventory.AttentionRule, today time.Time) dto.ItemDTO {
	d := dto.ItemDTO{
		ID:           it.ID,
		Name:         it.Name,
		Quantity:     it.Quantity,
		Unit:         it.Unit,
		CreatedAtUTC: it.CreatedAtUTC,
		UpdatedAtUTC: it.UpdatedAtUTC,
		LowStock:     rule.LowStock(it),
		ExpiringSoon: rule.ExpiringSoon(it, today),
	}
	d.NeedsAttention = d.LowStock || d.ExpiringSoon
	if it.ExpiryDate != nil {
		s := it.ExpiryDate.Format(entity.ExpiryDateForm)
		d.ExpiryDate = &s
	}
	return d
}

// ItemsToDTO aplica ItemToDTO a la lista.
func ItemsToDTO(items []*entity.Item, rule inventory.AttentionRule, today time.Time) []dto.ItemDTO {
	out := make([]dto.ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, ItemToDTO(it, rule, today))
	}
	return out
}

// MovementToDTO movimiento para respuestas JSON.
func MovementToDTO(m *entity.StockMovement) dto.MovementDTO {
	d := dto.MovementDTO{
		ID:           m.ID,
		ItemID:       m.ItemID,
		Type:         string(m.Type),
		Quantity:     m.Quantity,
		Reason:       m.ReasonText(),
		User:         m.UserText(),
		TimestampUTC: m.TimestampUTC,
	}
	if m.Item != nil {
		d.ItemName = m.Item.Name
	}
	return d
}

// MovementsToDTO aplica MovementToDTO a la lista.
func MovementsToDTO(list []*entity.StockMovement) []dto.MovementDTO {
	out := make([]dto.MovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, MovementToDTO(m))
	}
	return out
}
