package entity

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory/internal/domain"
)

// MovementType tipo de movimiento del libro de existencias.
type MovementType string

// Tipos de movimiento. La dirección la da el tipo, nunca el signo de Quantity.
const (
	MovementAdd     MovementType = "Add"     // entrada
	MovementConsume MovementType = "Consume" // salida
	MovementAdjust  MovementType = "Adjust"  // ajuste (p. ej. al eliminar un artículo)
)

// Límites de los campos libres de un movimiento.
const (
	MaxReasonLength = 256
	MaxUserLength   = 128
)

// ParseMovementType convierte el nombre simbólico en MovementType.
func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(s) {
	case MovementAdd, MovementConsume, MovementAdjust:
		return MovementType(s), nil
	}
	return "", fmt.Errorf("%w: unknown movement type %q", domain.ErrInvalidInput, s)
}

// StockMovement entrada inmutable del libro: se crea como efecto de un cambio de cantidad
// y nunca se modifica. ItemID es nulo cuando el artículo fue eliminado.
type StockMovement struct {
	ID           int64
	ItemID       *int64
	Item         *Item // referencia en memoria (artículos nuevos sin ID, nombre para exportar)
	Type         MovementType
	Quantity     decimal.Decimal // magnitud, siempre >= 0
	Reason       *string
	User         *string
	TimestampUTC time.Time
}

// ResolveItemID fija ItemID a partir de la referencia en memoria, una vez que el artículo tiene ID.
func (m *StockMovement) ResolveItemID() {
	if m.ItemID == nil && m.Item != nil && m.Item.ID != 0 {
		id := m.Item.ID
		m.ItemID = &id
	}
}

// ReasonText devuelve Reason o "".
func (m *StockMovement) ReasonText() string {
	if m.Reason == nil {
		return ""
	}
	return *m.Reason
}

// UserText devuelve User o "".
func (m *StockMovement) UserText() string {
	if m.User == nil {
		return ""
	}
	return *m.User
}

// Validate comprueba magnitud no negativa, tipo conocido y longitudes.
func (m *StockMovement) Validate() error {
	if _, err := ParseMovementType(string(m.Type)); err != nil {
		return err
	}
	if m.Quantity.IsNegative() {
		return fmt.Errorf("%w: movement quantity must be a non-negative magnitude", domain.ErrInvalidInput)
	}
	if m.Reason != nil && utf8.RuneCountInString(*m.Reason) > MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", domain.ErrInvalidInput, MaxReasonLength)
	}
	if m.User != nil && utf8.RuneCountInString(*m.User) > MaxUserLength {
		return fmt.Errorf("%w: user exceeds %d characters", domain.ErrInvalidInput, MaxUserLength)
	}
	return nil
}
