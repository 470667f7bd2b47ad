package csvcodec

import (
	"strconv"
	"strings"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
)

// ExportMovements serializa el libro. ItemName se toma del artículo adjunto, si no de nameByID,
// y si no queda vacío (p. ej. movimientos de artículos eliminados).
func ExportMovements(movements []*entity.StockMovement, nameByID map[int64]string) string {
	rows := make([][]string, 0, len(movements))
	for _, m := range movements {
		if m == nil {
			continue
		}
		itemID := ""
		if m.ItemID != nil {
			itemID = strconv.FormatInt(*m.ItemID, 10)
		}
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			itemID,
			itemName(m, nameByID),
			string(m.Type),
			m.Quantity.String(),
			m.ReasonText(),
			m.UserText(),
			formatTimestamp(m.TimestampUTC),
		})
	}
	return writeAll(movementsHeader, rows)
}

func itemName(m *entity.StockMovement, nameByID map[int64]string) string {
	if m.Item != nil && strings.TrimSpace(m.Item.Name) != "" {
		return m.Item.Name
	}
	if m.ItemID != nil && nameByID != nil {
		return nameByID[*m.ItemID]
	}
	return ""
}
