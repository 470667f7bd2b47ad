package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
)

type itemRow struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string          `gorm:"column:name;size:200;not null"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:numeric(18,3);not null"`
	Unit         string          `gorm:"column:unit;size:32;not null;default:pcs"`
	ExpiryDate   *time.Time      `gorm:"column:expiry_date;type:date"`
	CreatedAtUTC time.Time       `gorm:"column:created_at_utc;not null"`
	UpdatedAtUTC *time.Time      `gorm:"column:updated_at_utc"`
}

func (itemRow) TableName() string { return "items" }

type movementRow struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ItemID       *int64          `gorm:"column:item_id;index:ix_stock_movements_item_ts,priority:1"`
	Item         *itemRow        `gorm:"foreignKey:ItemID;constraint:OnDelete:SET NULL"`
	Type         string          `gorm:"column:type;size:16;not null"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:numeric(18,3);not null"`
	Reason       *string         `gorm:"column:reason;size:256"`
	User         *string         `gorm:"column:user;size:128"`
	TimestampUTC time.Time       `gorm:"column:timestamp_utc;not null;index:ix_stock_movements_item_ts,priority:2"`
}

func (movementRow) TableName() string { return "stock_movements" }

func toItemRow(it *entity.Item) itemRow {
	return itemRow{
		ID:           it.ID,
		Name:         it.Name,
		Quantity:     it.Quantity,
		Unit:         it.Unit,
		ExpiryDate:   utcPtr(it.ExpiryDate),
		CreatedAtUTC: it.CreatedAtUTC.UTC(),
		UpdatedAtUTC: utcPtr(it.UpdatedAtUTC),
	}
}

func (r itemRow) toEntity() *entity.Item {
	it := &entity.Item{
		ID:           r.ID,
		Name:         r.Name,
		Quantity:     r.Quantity,
		Unit:         r.Unit,
		ExpiryDate:   utcPtr(r.ExpiryDate),
		CreatedAtUTC: r.CreatedAtUTC.UTC(),
		UpdatedAtUTC: utcPtr(r.UpdatedAtUTC),
	}
	if it.ExpiryDate != nil {
		d := entity.DateOnly(*it.ExpiryDate)
		it.ExpiryDate = &d
	}
	return it
}

func toMovementRow(m *entity.StockMovement) movementRow {
	return movementRow{
		ID:           m.ID,
		ItemID:       m.ItemID,
		Type:         string(m.Type),
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		User:         m.User,
		TimestampUTC: m.TimestampUTC.UTC(),
	}
}

func (r movementRow) toEntity() *entity.StockMovement {
	m := &entity.StockMovement{
		ID:           r.ID,
		ItemID:       r.ItemID,
		Type:         entity.MovementType(r.Type),
		Quantity:     r.Quantity,
		Reason:       r.Reason,
		User:         r.User,
		TimestampUTC: r.TimestampUTC.UTC(),
	}
	if r.Item != nil {
		m.Item = r.Item.toEntity()
	}
	return m
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
