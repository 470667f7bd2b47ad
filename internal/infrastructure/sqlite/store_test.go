package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitchen-inventory/internal/domain"
	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/sqlite"
)

var created = time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.OpenStore(filepath.Join(t.TempDir(), "kitchen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newItem(name, q string) *entity.Item {
	it := entity.NewItem(name, qty(q))
	it.CreatedAtUTC = created
	return it
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículos
// ──────────────────────────────────────────────────────────────────────────────

func TestItemRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Items()

	expiry := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	it := newItem("Milk", "2.5")
	it.Unit = "l"
	it.ExpiryDate = &expiry
	require.NoError(t, repo.Create(ctx, it))
	require.NotZero(t, it.ID)

	got, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Milk", got.Name)
	assert.True(t, got.Quantity.Equal(qty("2.5")))
	assert.Equal(t, "l", got.Unit)
	require.NotNil(t, got.ExpiryDate)
	assert.True(t, expiry.Equal(*got.ExpiryDate))
	assert.True(t, created.Equal(got.CreatedAtUTC))
	assert.Nil(t, got.UpdatedAtUTC)

	updated := created.Add(time.Hour)
	got.Quantity = qty("0.125")
	got.ExpiryDate = nil
	got.UpdatedAtUTC = &updated
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.True(t, again.Quantity.Equal(qty("0.125")))
	assert.Nil(t, again.ExpiryDate)
	require.NotNil(t, again.UpdatedAtUTC)
	assert.True(t, updated.Equal(*again.UpdatedAtUTC))

	require.NoError(t, repo.Delete(ctx, it.ID))
	gone, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestItemRepo_NoEncontrado(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Items()

	err := repo.Update(ctx, &entity.Item{ID: 99, Name: "X", Unit: "pcs"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = repo.Delete(ctx, 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemRepo_ListOrdenadoPorNombre(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Items()
	for _, n := range []string{"rice", "Beans", "apple"} {
		require.NoError(t, repo.Create(ctx, newItem(n, "1")))
	}

	list, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "apple", list[0].Name)
	assert.Equal(t, "Beans", list[1].Name)
	assert.Equal(t, "rice", list[2].Name)
}

func TestItemRepo_QuantitiesByIDs(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Items()
	a, b := newItem("A", "5"), newItem("B", "0.5")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	m, err := repo.QuantitiesByIDs(ctx, []int64{a.ID, b.ID, 999})

	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.True(t, m[a.ID].Equal(qty("5")))
	assert.True(t, m[b.ID].Equal(qty("0.5")))

	empty, err := repo.QuantitiesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos y transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_MovimientoDeArticuloNuevoResuelveID(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	it := newItem("Flour", "2")
	mv := &entity.StockMovement{Item: it, Type: entity.MovementAdd, Quantity: qty("2"), TimestampUTC: created}

	err := s.Run(ctx, func(items repository.ItemRepository, movs repository.StockMovementRepository) error {
		if err := items.Create(ctx, it); err != nil {
			return err
		}
		return movs.Create(ctx, mv)
	})

	require.NoError(t, err)
	require.NotNil(t, mv.ItemID)
	assert.Equal(t, it.ID, *mv.ItemID)
	list, err := s.Movements().List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Item)
	assert.Equal(t, "Flour", list[0].Item.Name)
	assert.Equal(t, entity.MovementAdd, list[0].Type)
}

func TestStore_RollbackAnteError(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	boom := errors.New("boom")

	err := s.Run(ctx, func(items repository.ItemRepository, movs repository.StockMovementRepository) error {
		if err := items.Create(ctx, newItem("Ghost", "1")); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	list, err := s.Items().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_EliminarArticuloDejaMovimientoHuerfano(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	it := newItem("Eggs", "7")
	require.NoError(t, s.Items().Create(ctx, it))
	id := it.ID
	require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{ItemID: &id, Type: entity.MovementAdd, Quantity: qty("7"), TimestampUTC: created}))

	require.NoError(t, s.Items().Delete(ctx, id))

	list, err := s.Movements().List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].ItemID)
	assert.Nil(t, list[0].Item)
}

func TestMovementRepo_FiltroYOrden(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	a, b := newItem("A", "1"), newItem("B", "1")
	require.NoError(t, s.Items().Create(ctx, a))
	require.NoError(t, s.Items().Create(ctx, b))
	for i := 0; i < 3; i++ {
		id := a.ID
		require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{
			ItemID: &id, Type: entity.MovementAdd, Quantity: qty("1"), TimestampUTC: created.Add(time.Duration(i) * time.Minute),
		}))
	}
	bid := b.ID
	require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{ItemID: &bid, Type: entity.MovementConsume, Quantity: qty("1"), TimestampUTC: created}))

	aid := a.ID
	list, err := s.Movements().List(ctx, repository.MovementFilter{ItemID: &aid, Limit: 2})

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].TimestampUTC.After(list[1].TimestampUTC))
	for _, m := range list {
		assert.Equal(t, aid, *m.ItemID)
	}
}
