package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory/internal/domain"
)

// Límites de un artículo (coinciden con el esquema de items).
const (
	DefaultUnit    = "pcs"
	MaxNameLength  = 200
	MaxUnitLength  = 32
	QuantityScale  = 3
	ExpiryDateForm = "2006-01-02"
)

// MaxQuantity cota superior de Quantity.
var MaxQuantity = decimal.NewFromInt(1_000_000)

// Item representa un artículo de la despensa.
// ID = 0 indica un artículo aún no guardado; el almacenamiento asigna el ID en el primer guardado.
type Item struct {
	ID           int64
	Name         string
	Quantity     decimal.Decimal // nunca negativo al persistir
	Unit         string
	ExpiryDate   *time.Time // solo fecha
	CreatedAtUTC time.Time  // se fija una sola vez
	UpdatedAtUTC *time.Time // se actualiza en cada mutación
}

// NewItem construye un artículo sin guardar con la unidad por defecto.
func NewItem(name string, quantity decimal.Decimal) *Item {
	return &Item{Name: name, Quantity: quantity, Unit: DefaultUnit}
}

// IsNew indica si el artículo todavía no tiene ID persistente.
func (i *Item) IsNew() bool { return i.ID == 0 }

// Clone devuelve una copia independiente (incluye los punteros de fecha).
func (i *Item) Clone() *Item {
	c := *i
	if i.ExpiryDate != nil {
		d := *i.ExpiryDate
		c.ExpiryDate = &d
	}
	if i.UpdatedAtUTC != nil {
		u := *i.UpdatedAtUTC
		c.UpdatedAtUTC = &u
	}
	return &c
}

// Validate aplica las reglas de la capa de presentación: nombre requerido, cantidad en [0, 1.000.000]
// con escala 3 y unidad requerida de máximo 32 caracteres.
func (i *Item) Validate() error {
	name := strings.TrimSpace(i.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(i.Name) > MaxNameLength {
		return fmt.Errorf("%w: name %q exceeds %d characters", domain.ErrInvalidInput, truncate(name, 20), MaxNameLength)
	}
	if i.Quantity.IsNegative() {
		return fmt.Errorf("%w: quantity of %q must be >= 0", domain.ErrInvalidInput, name)
	}
	if i.Quantity.GreaterThan(MaxQuantity) {
		return fmt.Errorf("%w: quantity of %q must be <= %s", domain.ErrInvalidInput, name, MaxQuantity)
	}
	if !i.Quantity.Equal(i.Quantity.Round(QuantityScale)) {
		return fmt.Errorf("%w: quantity of %q allows at most %d decimals", domain.ErrInvalidInput, name, QuantityScale)
	}
	if strings.TrimSpace(i.Unit) == "" {
		return fmt.Errorf("%w: unit of %q is required", domain.ErrInvalidInput, name)
	}
	if utf8.RuneCountInString(i.Unit) > MaxUnitLength {
		return fmt.Errorf("%w: unit of %q exceeds %d characters", domain.ErrInvalidInput, name, MaxUnitLength)
	}
	return nil
}

// DateOnly normaliza una fecha a medianoche UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}
