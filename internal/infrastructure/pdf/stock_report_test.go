package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/inventory"
)

var today = time.Date(2025, 8, 22, 12, 0, 0, 0, time.UTC)

func TestStatus(t *testing.T) {
	rule := inventory.DefaultAttentionRule()
	soon := today.AddDate(0, 0, 2)

	assert.Equal(t, "OK", status(rule, &entity.Item{Quantity: decimal.NewFromInt(10)}, today))
	assert.Equal(t, "Low stock", status(rule, &entity.Item{Quantity: decimal.NewFromInt(1)}, today))
	assert.Equal(t, "Expiring", status(rule, &entity.Item{Quantity: decimal.NewFromInt(10), ExpiryDate: &soon}, today))
	assert.Equal(t, "Low / expiring", status(rule, &entity.Item{Quantity: decimal.Zero, ExpiryDate: &soon}, today))
}

func TestGenerate_DevuelvePDF(t *testing.T) {
	items := []*entity.Item{
		{ID: 1, Name: "Rice", Quantity: decimal.NewFromInt(2), Unit: "kg"},
		{ID: 2, Name: "Milk", Quantity: decimal.RequireFromString("12.5"), Unit: "l"},
	}

	b, err := NewStockReportGenerator().Generate(context.Background(), StockReport{
		Items: items, Rule: inventory.DefaultAttentionRule(), GeneratedAt: today, User: "ana",
	})

	require.NoError(t, err)
	require.Greater(t, len(b), 4)
	assert.Equal(t, "%PDF", string(b[:4]))
}
