package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemDTO artículo en respuestas JSON.
type ItemDTO struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	ExpiryDate     *string         `json:"expiry_date,omitempty"` // yyyy-MM-dd
	CreatedAtUTC   time.Time       `json:"created_at_utc"`
	UpdatedAtUTC   *time.Time      `json:"updated_at_utc,omitempty"`
	LowStock       bool            `json:"low_stock"`
	ExpiringSoon   bool            `json:"expiring_soon"`
	NeedsAttention bool            `json:"needs_attention"`
}

// ItemInput artículo propuesto en PUT /api/items. ID = 0 crea uno nuevo.
type ItemInput struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	ExpiryDate *string         `json:"expiry_date,omitempty"`
}

// SaveItemsRequest body para PUT /api/items: el estado completo de los artículos editados.
type SaveItemsRequest struct {
	Items []ItemInput `json:"items"`
}

// SaveItemsResponse resultado del guardado.
type SaveItemsResponse struct {
	Created   int       `json:"created"`
	Updated   int       `json:"updated"`
	Movements int       `json:"movements"`
	Items     []ItemDTO `json:"items"`
}

// ItemFilter filtros de GET /api/items.
type ItemFilter struct {
	Query         string `query:"q"`
	AttentionOnly bool   `query:"attention"`
}

// MovementDTO movimiento del libro en respuestas JSON.
type MovementDTO struct {
	ID           int64           `json:"id"`
	ItemID       *int64          `json:"item_id"`
	ItemName     string          `json:"item_name,omitempty"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason,omitempty"`
	User         string          `json:"user,omitempty"`
	TimestampUTC time.Time       `json:"timestamp_utc"`
}

// MovementQuery filtros de GET /api/movements.
type MovementQuery struct {
	ItemID int64 `query:"item_id"`
	Limit  int   `query:"limit"`
}

// ImportResult resultado de una importación CSV.
type ImportResult struct {
	Added         int    `json:"added"`
	Updated       int    `json:"updated"`
	StatusMessage string `json:"status_message"`
}
