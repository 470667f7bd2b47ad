// Package xlsx exporta artículos y movimientos como libro de Excel (hojas Items y Movements).
package xlsx

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
)

// Nombres de hoja.
const (
	SheetItems     = "Items"
	SheetMovements = "Movements"
)

// ContentType tipo MIME de .xlsx.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	itemHeaders     = []any{"Id", "Name", "Quantity", "Unit", "ExpiryDate", "CreatedAtUtc", "UpdatedAtUtc"}
	movementHeaders = []any{"Id", "ItemId", "ItemName", "Type", "Quantity", "Reason", "User", "TimestampUtc"}
)

const timeLayout = "2006-01-02 15:04:05"

// Write escribe el libro en w. Las cantidades van como números; fechas y horas como texto UTC.
func Write(w io.Writer, items []*entity.Item, movements []*entity.StockMovement) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetItems); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetMovements); err != nil {
		return fmt.Errorf("xlsx: create sheet: %w", err)
	}

	if err := writeItems(f, items); err != nil {
		return err
	}
	if err := writeMovements(f, items, movements); err != nil {
		return err
	}

	_ = f.SetColWidth(SheetItems, "B", "B", 30)
	_ = f.SetColWidth(SheetItems, "E", "G", 20)
	_ = f.SetColWidth(SheetMovements, "C", "C", 30)
	_ = f.SetColWidth(SheetMovements, "F", "H", 20)
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func writeItems(f *excelize.File, items []*entity.Item) error {
	if err := setRow(f, SheetItems, 1, itemHeaders); err != nil {
		return err
	}
	for i, it := range items {
		row := []any{
			it.ID, it.Name, it.Quantity.InexactFloat64(), it.Unit,
			dateText(it.ExpiryDate), it.CreatedAtUTC.UTC().Format(timeLayout), timeText(it.UpdatedAtUTC),
		}
		if err := setRow(f, SheetItems, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeMovements(f *excelize.File, items []*entity.Item, movements []*entity.StockMovement) error {
	names := make(map[int64]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}
	if err := setRow(f, SheetMovements, 1, movementHeaders); err != nil {
		return err
	}
	for i, m := range movements {
		var itemID any
		name := ""
		if m.ItemID != nil {
			itemID = *m.ItemID
			name = names[*m.ItemID]
		}
		if m.Item != nil && m.Item.Name != "" {
			name = m.Item.Name
		}
		row := []any{
			m.ID, itemID, name, string(m.Type), m.Quantity.InexactFloat64(),
			m.ReasonText(), m.UserText(), m.TimestampUTC.UTC().Format(timeLayout),
		}
		if err := setRow(f, SheetMovements, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("xlsx: cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: %s row %d: %w", sheet, n, err)
	}
	return nil
}

func dateText(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(entity.ExpiryDateForm)
}

func timeText(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(timeLayout)
}
