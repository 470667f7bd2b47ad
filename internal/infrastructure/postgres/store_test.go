package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitchen-inventory/internal/domain"
	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/kitchen-inventory/pkg/config"
)

// Requiere una base desechable: KITCHEN_TEST_DATABASE_URL=postgres://...
func openStore(t *testing.T) *postgres.Store {
	t.Helper()
	url := os.Getenv("KITCHEN_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("KITCHEN_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	s, err := postgres.OpenStore(ctx, config.DBConfig{Provider: config.ProviderPostgres, DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStore_GuardarConMovimientoYEliminar(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	it := entity.NewItem("pg-test-"+now.Format("150405.000000"), qty("7.125"))
	it.CreatedAtUTC = now
	mv := &entity.StockMovement{Item: it, Type: entity.MovementAdd, Quantity: qty("7.125"), TimestampUTC: now}
	err := s.Run(ctx, func(items repository.ItemRepository, movs repository.StockMovementRepository) error {
		if err := items.Create(ctx, it); err != nil {
			return err
		}
		return movs.Create(ctx, mv)
	})
	require.NoError(t, err)
	require.NotNil(t, mv.ItemID)

	var prior map[int64]decimal.Decimal
	err = s.Run(ctx, func(items repository.ItemRepository, _ repository.StockMovementRepository) error {
		var err error
		prior, err = items.QuantitiesByIDs(ctx, []int64{it.ID})
		return err
	})
	require.NoError(t, err)
	assert.True(t, prior[it.ID].Equal(qty("7.125")))

	id := it.ID
	list, err := s.Movements().List(ctx, repository.MovementFilter{ItemID: &id})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Item)
	assert.Equal(t, it.Name, list[0].Item.Name)

	require.NoError(t, s.Items().Delete(ctx, id))
	err = s.Items().Delete(ctx, id)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
