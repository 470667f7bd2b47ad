package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/ledger"
)

var testNow = time.Date(2025, 8, 22, 18, 30, 0, 0, time.UTC)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func existing(id int64, name, q string) *entity.Item {
	return &entity.Item{
		ID:           id,
		Name:         name,
		Quantity:     qty(q),
		Unit:         entity.DefaultUnit,
		CreatedAtUTC: testNow.Add(-48 * time.Hour),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículos nuevos
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_NuevoConCantidad_EmiteAdd(t *testing.T) {
	item := entity.NewItem("New Item", qty("1"))

	plan := ledger.Reconcile([]*entity.Item{item}, nil, ledger.SaveOptions(testNow, "ana"))

	require.Len(t, plan.Upserts, 1)
	require.Len(t, plan.Movements, 1)
	mv := plan.Movements[0]
	assert.Equal(t, entity.MovementAdd, mv.Type)
	assert.True(t, mv.Quantity.Equal(qty("1")))
	assert.Equal(t, ledger.ReasonInitialAdd, mv.ReasonText())
	assert.Equal(t, "ana", mv.UserText())
	assert.Nil(t, mv.ItemID, "el artículo nuevo aún no tiene ID")
	assert.Same(t, plan.Upserts[0], mv.Item, "el movimiento referencia el artículo del plan")

	up := plan.Upserts[0]
	assert.Equal(t, testNow, up.CreatedAtUTC)
	require.NotNil(t, up.UpdatedAtUTC)
	assert.Equal(t, testNow, *up.UpdatedAtUTC)
}

func TestReconcile_NuevoConCantidadCero_NoEmite(t *testing.T) {
	item := entity.NewItem("Salt", decimal.Zero)

	plan := ledger.Reconcile([]*entity.Item{item}, nil, ledger.SaveOptions(testNow, ""))

	assert.Len(t, plan.Upserts, 1)
	assert.Empty(t, plan.Movements)
	assert.Equal(t, 1, plan.Created())
	assert.Equal(t, 0, plan.Updated())
}

func TestReconcile_NoMutaLaEntrada(t *testing.T) {
	item := entity.NewItem("Flour", qty("2"))

	plan := ledger.Reconcile([]*entity.Item{item}, nil, ledger.SaveOptions(testNow, ""))

	assert.True(t, item.CreatedAtUTC.IsZero())
	assert.Nil(t, item.UpdatedAtUTC)
	assert.NotSame(t, item, plan.Upserts[0])
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículos existentes: delta contra la cantidad previa
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_Existentes_Deltas(t *testing.T) {
	cases := []struct {
		name      string
		prior     string
		next      string
		wantType  entity.MovementType
		wantQty   string
		wantEmpty bool
	}{
		{name: "sin cambio", prior: "5", next: "5", wantEmpty: true},
		{name: "aumento", prior: "2", next: "5", wantType: entity.MovementAdd, wantQty: "3"},
		{name: "disminución", prior: "5", next: "2", wantType: entity.MovementConsume, wantQty: "3"},
		{name: "decimales", prior: "1.250", next: "0.5", wantType: entity.MovementConsume, wantQty: "0.75"},
		{name: "a cero", prior: "7", next: "0", wantType: entity.MovementConsume, wantQty: "7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := existing(1, "Milk", tc.next)
			prior := map[int64]decimal.Decimal{1: qty(tc.prior)}

			plan := ledger.Reconcile([]*entity.Item{item}, prior, ledger.SaveOptions(testNow, ""))

			require.Len(t, plan.Upserts, 1)
			if tc.wantEmpty {
				assert.Empty(t, plan.Movements)
				return
			}
			require.Len(t, plan.Movements, 1)
			mv := plan.Movements[0]
			assert.Equal(t, tc.wantType, mv.Type)
			assert.True(t, mv.Quantity.Equal(qty(tc.wantQty)), "magnitud %s, esperado %s", mv.Quantity, tc.wantQty)
			assert.False(t, mv.Quantity.IsNegative())
			assert.Equal(t, ledger.ReasonManualEdit, mv.ReasonText())
			require.NotNil(t, mv.ItemID)
			assert.Equal(t, int64(1), *mv.ItemID)
			assert.Nil(t, mv.User)
		})
	}
}

func TestReconcile_ExistenteSinPrevia_UsaCero(t *testing.T) {
	item := existing(9, "Beans", "4")

	plan := ledger.Reconcile([]*entity.Item{item}, map[int64]decimal.Decimal{}, ledger.SaveOptions(testNow, ""))

	require.Len(t, plan.Movements, 1)
	assert.Equal(t, entity.MovementAdd, plan.Movements[0].Type)
	assert.True(t, plan.Movements[0].Quantity.Equal(qty("4")))
}

func TestReconcile_Existente_ConservaCreacionYActualizaFecha(t *testing.T) {
	item := existing(3, "Rice", "5")
	created := item.CreatedAtUTC

	plan := ledger.Reconcile([]*entity.Item{item}, map[int64]decimal.Decimal{3: qty("5")}, ledger.SaveOptions(testNow, ""))

	up := plan.Upserts[0]
	assert.Equal(t, created, up.CreatedAtUTC)
	require.NotNil(t, up.UpdatedAtUTC)
	assert.Equal(t, testNow, *up.UpdatedAtUTC)
}

func TestReconcile_MotivosDeImportacion(t *testing.T) {
	items := []*entity.Item{existing(1, "Rice", "2"), entity.NewItem("Pasta", qty("3"))}
	prior := map[int64]decimal.Decimal{1: qty("5")}

	plan := ledger.Reconcile(items, prior, ledger.ImportOptions(testNow, ""))

	require.Len(t, plan.Movements, 2)
	assert.Equal(t, ledger.ReasonImportUpdate, plan.Movements[0].ReasonText())
	assert.Equal(t, entity.MovementConsume, plan.Movements[0].Type)
	assert.Equal(t, ledger.ReasonImportAdd, plan.Movements[1].ReasonText())
	assert.Equal(t, entity.MovementAdd, plan.Movements[1].Type)
}

func TestReconcile_OpcionesVacias_UsanValoresPorDefecto(t *testing.T) {
	plan := ledger.Reconcile([]*entity.Item{entity.NewItem("Eggs", qty("12"))}, nil, ledger.Options{})

	require.Len(t, plan.Movements, 1)
	assert.Equal(t, ledger.ReasonInitialAdd, plan.Movements[0].ReasonText())
	assert.False(t, plan.Movements[0].TimestampUTC.IsZero())
	assert.Equal(t, time.UTC, plan.Movements[0].TimestampUTC.Location())
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación
// ──────────────────────────────────────────────────────────────────────────────

func TestForDelete(t *testing.T) {
	item := existing(4, "Cheese", "7")

	mv := ledger.ForDelete(item, qty("7"), ledger.SaveOptions(testNow, ""))
	require.NotNil(t, mv)
	assert.Equal(t, entity.MovementAdjust, mv.Type)
	assert.True(t, mv.Quantity.Equal(qty("7")))
	assert.Equal(t, ledger.ReasonDeleteItem, mv.ReasonText())
	require.NotNil(t, mv.ItemID)
	assert.Equal(t, int64(4), *mv.ItemID)

	assert.Nil(t, ledger.ForDelete(item, decimal.Zero, ledger.SaveOptions(testNow, "")),
		"eliminar con cantidad 0 no emite movimiento")
}

func TestClassify(t *testing.T) {
	typ, mag := ledger.Classify(qty("-2.5"))
	assert.Equal(t, entity.MovementConsume, typ)
	assert.True(t, mag.Equal(qty("2.5")))

	typ, mag = ledger.Classify(qty("0.001"))
	assert.Equal(t, entity.MovementAdd, typ)
	assert.True(t, mag.Equal(qty("0.001")))

	typ, mag = ledger.Classify(decimal.Zero)
	assert.Empty(t, typ)
	assert.True(t, mag.IsZero())
}

func TestPlanSummary(t *testing.T) {
	items := []*entity.Item{
		entity.NewItem("Flour", qty("2")),
		existing(4, "Rice", "5"),
		existing(5, "Salt", "1"),
	}
	items[1].Quantity = qty("3")

	plan := ledger.Reconcile(items, map[int64]decimal.Decimal{4: qty("5"), 5: qty("1")}, ledger.SaveOptions(testNow, ""))

	assert.Equal(t, ledger.Summary{Created: 1, Updated: 2, Movements: 2}, plan.Summary())
}
