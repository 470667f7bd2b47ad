package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jhoicas/kitchen-inventory/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/pdf"
)

// ReportUseCase genera los documentos descargables: informe PDF y libro xlsx.
type ReportUseCase struct {
	inv      *inventory.InventoryUseCase
	pdf      StockReportGenerator
	workbook WorkbookWriter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(inv *inventory.InventoryUseCase, generator StockReportGenerator, workbook WorkbookWriter) *ReportUseCase {
	return &ReportUseCase{inv: inv, pdf: generator, workbook: workbook}
}

// StockReportPDF informe de existencias con las banderas de atención vigentes.
// Devuelve los bytes y un nombre de archivo sugerido.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context) ([]byte, string, error) {
	items, err := uc.inv.ListItems(ctx, dto.ItemFilter{})
	if err != nil {
		return nil, "", fmt.Errorf("report: list items: %w", err)
	}
	now := uc.inv.Now()
	out, err := uc.pdf.Generate(ctx, pdf.StockReport{
		Items:       items,
		Rule:        uc.inv.AttentionRule(),
		GeneratedAt: now,
		User:        uc.inv.User(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("report: generate pdf: %w", err)
	}
	return out, "stock-report-" + now.Format("20060102") + ".pdf", nil
}

// WorkbookXLSX artículos y movimientos en un libro de dos hojas.
func (uc *ReportUseCase) WorkbookXLSX(ctx context.Context) ([]byte, string, error) {
	items, movs, err := uc.inv.Snapshot(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("report: snapshot: %w", err)
	}
	var buf bytes.Buffer
	if err := uc.workbook(&buf, items, movs); err != nil {
		return nil, "", fmt.Errorf("report: write workbook: %w", err)
	}
	return buf.Bytes(), "inventory-" + uc.inv.Now().Format("20060102") + ".xlsx", nil
}
