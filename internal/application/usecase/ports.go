package usecase

import (
	"context"
	"io"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/diagnostics"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/pdf"
)

// StockReportGenerator genera el PDF del informe de existencias.
type StockReportGenerator interface {
	Generate(ctx context.Context, rep pdf.StockReport) ([]byte, error)
}

// WorkbookWriter escribe artículos y movimientos como libro de cálculo.
type WorkbookWriter func(w io.Writer, items []*entity.Item, movements []*entity.StockMovement) error

// BundleBuilder arma el ZIP de diagnóstico.
type BundleBuilder interface {
	Build(src diagnostics.Source) ([]byte, error)
}
