// Package ledger calcula los movimientos de existencias que explican un cambio de cantidades.
//
// Reconcile es una función pura: recibe el estado propuesto y las cantidades persistidas
// (leídas dentro de la misma transacción por el caso de uso) y devuelve las escrituras a aplicar.
// No toca almacenamiento ni muta la entrada.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
)

// Motivos registrados en el libro.
const (
	ReasonInitialAdd   = "Initial add"
	ReasonManualEdit   = "Manual edit"
	ReasonImportAdd    = "Import add"
	ReasonImportUpdate = "Import update"
	ReasonDeleteItem   = "Delete item"
)

// Options parámetros de una conciliación.
type Options struct {
	Now          time.Time // instante de la operación; cero = time.Now()
	User         string    // actor registrado en los movimientos; vacío = nulo
	NewReason    string    // motivo para artículos nuevos
	UpdateReason string    // motivo para artículos existentes
}

// SaveOptions opciones del guardado manual desde la capa de presentación.
func SaveOptions(now time.Time, user string) Options {
	return Options{Now: now, User: user, NewReason: ReasonInitialAdd, UpdateReason: ReasonManualEdit}
}

// ImportOptions opciones de la importación CSV.
func ImportOptions(now time.Time, user string) Options {
	return Options{Now: now, User: user, NewReason: ReasonImportAdd, UpdateReason: ReasonImportUpdate}
}

func (o Options) normalized() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	o.Now = o.Now.UTC()
	if o.NewReason == "" {
		o.NewReason = ReasonInitialAdd
	}
	if o.UpdateReason == "" {
		o.UpdateReason = ReasonManualEdit
	}
	return o
}

// Plan escrituras resultantes: artículos a insertar/actualizar y movimientos a emitir.
// Los movimientos de artículos nuevos referencian el artículo por puntero (Movement.Item)
// porque aún no tiene ID; el repositorio resuelve ItemID tras insertar.
type Plan struct {
	Upserts   []*entity.Item
	Movements []*entity.StockMovement

	created int // fijado por Reconcile; sigue valiendo después de asignar IDs
}

// Created cantidad de artículos nuevos del plan.
func (p Plan) Created() int { return p.created }

// Updated cantidad de artículos existentes del plan.
func (p Plan) Updated() int { return len(p.Upserts) - p.created }

// Summary conteos del plan.
type Summary struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Movements int `json:"movements"`
}

func (p Plan) Summary() Summary {
	return Summary{Created: p.Created(), Updated: p.Updated(), Movements: len(p.Movements)}
}

// Reconcile compara cada artículo propuesto con su cantidad previa y produce el conjunto mínimo
// de movimientos que explica el cambio.
//
//   - ID = 0: CreatedAtUTC = UpdatedAtUTC = now; Add por |cantidad| si es distinta de cero.
//   - ID != 0: delta = nueva - previa (previa 0 si falta); UpdatedAtUTC = now;
//     Add si delta > 0, Consume si delta < 0, nada si delta = 0.
func Reconcile(proposed []*entity.Item, prior map[int64]decimal.Decimal, opts Options) Plan {
	opts = opts.normalized()
	now := opts.Now
	plan := Plan{Upserts: make([]*entity.Item, 0, len(proposed))}

	for _, p := range proposed {
		if p == nil {
			continue
		}
		it := p.Clone()
		updated := now
		it.UpdatedAtUTC = &updated

		if it.IsNew() {
			it.CreatedAtUTC = now
			plan.Upserts = append(plan.Upserts, it)
			plan.created++
			if !it.Quantity.IsZero() {
				plan.Movements = append(plan.Movements,
					newMovement(it, entity.MovementAdd, it.Quantity.Abs(), opts.NewReason, opts))
			}
			continue
		}

		plan.Upserts = append(plan.Upserts, it)
		old, ok := prior[it.ID]
		if !ok {
			old = decimal.Zero
		}
		delta := it.Quantity.Sub(old)
		if delta.IsZero() {
			continue
		}
		typ, magnitude := Classify(delta)
		mv := newMovement(it, typ, magnitude, opts.UpdateReason, opts)
		id := it.ID
		mv.ItemID = &id
		plan.Movements = append(plan.Movements, mv)
	}
	return plan
}

// ForDelete movimiento Adjust por la última cantidad conocida del artículo a eliminar.
// Devuelve nil si esa cantidad es exactamente 0.
func ForDelete(item *entity.Item, lastKnown decimal.Decimal, opts Options) *entity.StockMovement {
	if item == nil || lastKnown.IsZero() {
		return nil
	}
	opts = opts.normalized()
	mv := newMovement(item, entity.MovementAdjust, lastKnown.Abs(), ReasonDeleteItem, opts)
	if item.ID != 0 {
		id := item.ID
		mv.ItemID = &id
	}
	return mv
}

// Classify convierte un delta con signo en tipo + magnitud. Un delta cero no tiene tipo.
func Classify(delta decimal.Decimal) (entity.MovementType, decimal.Decimal) {
	switch delta.Sign() {
	case 1:
		return entity.MovementAdd, delta
	case -1:
		return entity.MovementConsume, delta.Neg()
	}
	return "", decimal.Zero
}

func newMovement(it *entity.Item, typ entity.MovementType, qty decimal.Decimal, reason string, opts Options) *entity.StockMovement {
	r := reason
	mv := &entity.StockMovement{
		Item:         it,
		Type:         typ,
		Quantity:     qty,
		Reason:       &r,
		TimestampUTC: opts.Now,
	}
	if opts.User != "" {
		u := opts.User
		mv.User = &u
	}
	return mv
}
