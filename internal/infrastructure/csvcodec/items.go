package csvcodec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
)

// Columnas mínimas de una fila de artículo (Id, Name, Quantity, Unit).
const minItemColumns = 4

// timestampLayouts formatos aceptados al leer CreatedAtUtc/UpdatedAtUtc.
// Sin zona se asume UTC; las fracciones de segundo se aceptan tras los segundos en todos.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	DateLayout,
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ExportItems serializa los artículos con la cabecera fija.
func ExportItems(items []*entity.Item) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		rows = append(rows, []string{
			strconv.FormatInt(it.ID, 10),
			it.Name,
			it.Quantity.String(),
			it.Unit,
			formatDate(it.ExpiryDate),
			formatTimestamp(it.CreatedAtUTC),
			formatTimestampPtr(it.UpdatedAtUTC),
		})
	}
	return writeAll(itemsHeader, rows)
}

// ParseItems lee artículos desde texto CSV. La cabecera es opcional (primera celda "Id").
//
// Tolerante por celda: Id inválido → 0 (artículo nuevo), cantidad inválida → 0, caducidad fuera de
// yyyy-MM-dd → nula, creación inválida → ahora. Se omiten filas vacías, con menos de 4 columnas o
// con nombre vacío. Solo un error de lectura del origen aborta el proceso.
func ParseItems(text string) ([]*entity.Item, error) {
	text = strings.TrimPrefix(text, bom)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	now := time.Now().UTC()
	var items []*entity.Item
	first := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return nil, fmt.Errorf("read items csv: %w", err)
		}
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		if it := parseItemRecord(rec, now); it != nil {
			items = append(items, it)
		}
	}
	return items, nil
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "Id")
}

func parseItemRecord(rec []string, now time.Time) *entity.Item {
	if len(rec) < minItemColumns {
		return nil
	}
	name := strings.TrimSpace(rec[1])
	if name == "" {
		return nil
	}
	it := &entity.Item{
		ID:           parseID(rec[0]),
		Name:         name,
		Quantity:     parseQuantity(rec[2]),
		Unit:         strings.TrimSpace(rec[3]),
		CreatedAtUTC: now,
	}
	if len(rec) > 4 {
		it.ExpiryDate = parseDate(rec[4])
	}
	if len(rec) > 5 {
		if t, ok := parseTimestamp(rec[5]); ok {
			it.CreatedAtUTC = t
		}
	}
	if len(rec) > 6 {
		if t, ok := parseTimestamp(rec[6]); ok {
			it.UpdatedAtUTC = &t
		}
	}
	return it
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func parseQuantity(s string) decimal.Decimal {
	q, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return q.Round(entity.QuantityScale)
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &d
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
