// Package pdf genera el informe imprimible de existencias.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación + usuario              │
//	│  RESUMEN: artículos / requieren atención                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Cantidad | Unidad | Caducidad | Estado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: umbrales aplicados                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 36, Green: 92, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 176, Green: 32, Blue: 32}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReport datos del informe.
type StockReport struct {
	Items       []*entity.Item
	Rule        inventory.AttentionRule
	GeneratedAt time.Time
	User        string
}

// StockReportGenerator genera el informe con Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) Generate(_ context.Context, rep StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kitchen inventory - stock report", true).
		WithAuthor(rep.User, true).
		Build()

	m := maroto.New(cfg)

	attention := 0
	for _, it := range rep.Items {
		if rep.Rule.NeedsAttention(it, rep.GeneratedAt) {
			attention++
		}
	}

	m.AddRows(headerRow(rep))
	m.AddRows(summaryRow(len(rep.Items), attention))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rep)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(rep.Rule))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(rep StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Kitchen inventory", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Stock report", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(rep.GeneratedAt.UTC().Format("2006-01-02 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(nonEmpty(rep.User, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func summaryRow(total, attention int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Items: %d   |   Needing attention: %d", total, attention), props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2,
		}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 5, align.Left),
		h("Quantity", 2, align.Right),
		h("Unit", 1, align.Left),
		h("Expiry", 2, align.Center),
		h("Status", 2, align.Left),
	)
}

// tableRows una fila por artículo; los que requieren atención van en rojo.
func tableRows(rep StockReport) []core.Row {
	rows := make([]core.Row, 0, len(rep.Items))
	for _, it := range rep.Items {
		style := props.Text{Size: 8, Top: 1}
		if rep.Rule.NeedsAttention(it, rep.GeneratedAt) {
			style.Color = colorAlert
			style.Style = fontstyle.Bold
		}
		cell := func(s string, a align.Type) core.Component {
			p := style
			p.Align = a
			p.Left, p.Right = 1, 1
			return text.New(s, p)
		}
		expiry := "-"
		if it.ExpiryDate != nil {
			expiry = it.ExpiryDate.Format(entity.ExpiryDateForm)
		}
		rows = append(rows, row.New(6).Add(
			col.New(5).Add(cell(it.Name, align.Left)),
			col.New(2).Add(cell(it.Quantity.String(), align.Right)),
			col.New(1).Add(cell(it.Unit, align.Left)),
			col.New(2).Add(cell(expiry, align.Center)),
			col.New(2).Add(cell(status(rep.Rule, it, rep.GeneratedAt), align.Left)),
		))
	}
	return rows
}

func footerRow(rule inventory.AttentionRule) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Low stock below %s; expiring within %d days.", rule.LowStockThreshold.String(), rule.ExpiringSoonDays),
			props.Text{Size: 7, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func status(rule inventory.AttentionRule, it *entity.Item, today time.Time) string {
	low, soon := rule.LowStock(it), rule.ExpiringSoon(it, today)
	switch {
	case low && soon:
		return "Low / expiring"
	case low:
		return "Low stock"
	case soon:
		return "Expiring"
	}
	return "OK"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
