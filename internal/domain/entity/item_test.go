package entity_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kitchen-inventory/internal/domain"
	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
)

func TestItemValidate(t *testing.T) {
	valid := func() *entity.Item { return entity.NewItem("Apples", decimal.NewFromInt(10)) }

	assert.NoError(t, valid().Validate())

	cases := []struct {
		name   string
		mutate func(*entity.Item)
	}{
		{"nombre vacío", func(i *entity.Item) { i.Name = "   " }},
		{"nombre largo", func(i *entity.Item) { i.Name = strings.Repeat("a", entity.MaxNameLength+1) }},
		{"cantidad negativa", func(i *entity.Item) { i.Quantity = decimal.NewFromInt(-1) }},
		{"cantidad fuera de rango", func(i *entity.Item) { i.Quantity = decimal.RequireFromString("1000000.001") }},
		{"más de tres decimales", func(i *entity.Item) { i.Quantity = decimal.RequireFromString("0.0001") }},
		{"unidad vacía", func(i *entity.Item) { i.Unit = "" }},
		{"unidad larga", func(i *entity.Item) { i.Unit = strings.Repeat("u", entity.MaxUnitLength+1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := valid()
			tc.mutate(it)
			assert.ErrorIs(t, it.Validate(), domain.ErrInvalidInput)
		})
	}

	limit := valid()
	limit.Quantity = entity.MaxQuantity
	assert.NoError(t, limit.Validate(), "el máximo es inclusivo")
}

func TestItemClone_EsIndependiente(t *testing.T) {
	exp := entity.DateOnly(time.Date(2025, 9, 1, 13, 0, 0, 0, time.UTC))
	it := &entity.Item{ID: 1, Name: "Milk", ExpiryDate: &exp}

	c := it.Clone()
	*c.ExpiryDate = c.ExpiryDate.AddDate(0, 0, 1)

	assert.NotEqual(t, *it.ExpiryDate, *c.ExpiryDate)
}

func TestParseMovementType(t *testing.T) {
	typ, err := entity.ParseMovementType("Consume")
	assert.NoError(t, err)
	assert.Equal(t, entity.MovementConsume, typ)

	_, err = entity.ParseMovementType("consume")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockMovement_ResolveItemID(t *testing.T) {
	it := entity.NewItem("Eggs", decimal.NewFromInt(6))
	mv := &entity.StockMovement{Item: it, Type: entity.MovementAdd, Quantity: it.Quantity}

	mv.ResolveItemID()
	assert.Nil(t, mv.ItemID, "sin ID todavía")

	it.ID = 42
	mv.ResolveItemID()
	if assert.NotNil(t, mv.ItemID) {
		assert.Equal(t, int64(42), *mv.ItemID)
	}
	assert.NoError(t, mv.Validate())
}
