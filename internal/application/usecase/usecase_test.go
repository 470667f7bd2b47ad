package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/kitchen-inventory/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory/internal/application/usecase"
	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/diagnostics"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/sqlite"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/xlsx"
	"github.com/jhoicas/kitchen-inventory/pkg/config"
	"github.com/jhoicas/kitchen-inventory/pkg/logger"
)

func setup(t *testing.T) (*inventory.InventoryUseCase, *sqlite.Store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "kitchen.db")
	store, err := sqlite.OpenStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	inv := inventory.NewInventoryUseCase(store, logger.Nop(), "ana")
	inv.SetClock(func() time.Time { return time.Date(2025, 8, 22, 10, 0, 0, 0, time.UTC) })
	_, err = inv.SaveChanges(context.Background(), []*entity.Item{
		entity.NewItem("Milk", decimal.NewFromInt(2)),
		entity.NewItem("Rice", decimal.NewFromInt(10)),
	})
	require.NoError(t, err)
	return inv, store, path
}

// ─────────────────────────────────────────────────────────────────────────────
// Informes
// ─────────────────────────────────────────────────────────────────────────────

func TestReport_StockPDF(t *testing.T) {
	inv, _, _ := setup(t)
	uc := usecase.NewReportUseCase(inv, pdf.NewStockReportGenerator(), xlsx.Write)

	out, name, err := uc.StockReportPDF(context.Background())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "stock-report-20250822.pdf", name)
}

func TestReport_WorkbookXLSX(t *testing.T) {
	inv, _, _ := setup(t)
	uc := usecase.NewReportUseCase(inv, pdf.NewStockReportGenerator(), xlsx.Write)

	out, name, err := uc.WorkbookXLSX(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "inventory-20250822.xlsx", name)
	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	items, err := f.GetRows(xlsx.SheetItems)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	movs, err := f.GetRows(xlsx.SheetMovements)
	require.NoError(t, err)
	assert.Len(t, movs, 3)
}

// ─────────────────────────────────────────────────────────────────────────────
// Soporte
// ─────────────────────────────────────────────────────────────────────────────

func TestSupport_InfoYBundle(t *testing.T) {
	_, store, path := setup(t)
	cfg := &config.Config{
		App: config.AppConfig{Name: "Kitchen Inventory", DataDir: filepath.Dir(path)},
		DB:  config.DBConfig{Provider: config.ProviderSQLite, SQLitePath: path},
	}
	uc := usecase.NewSupportUseCase(cfg, store, diagnostics.NewBuilder(logger.Nop()), "")

	info := uc.DatabaseInfo(context.Background())
	assert.Equal(t, "OK", info.Health.Status)
	assert.Equal(t, path, info.Target)

	out, name, err := uc.Bundle(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".zip"))

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "environment.json")
	assert.Contains(t, names, "database.json")
	assert.Contains(t, names, "db/kitchen.db")
}
