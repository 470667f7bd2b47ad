// Package importer asocia las filas importadas con los artículos existentes antes de pasar por el libro.
package importer

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
)

// StatusEmpty mensaje cuando el CSV no trae filas válidas.
const StatusEmpty = "No items found in CSV."

// Result artículos propuestos para el libro y conteos de la importación.
type Result struct {
	Proposed []*entity.Item
	Added    int
	Updated  int
}

// Total filas importadas (agregadas + actualizadas).
func (r Result) Total() int { return r.Added + r.Updated }

// Status resumen para el usuario.
func (r Result) Status() string {
	if r.Total() == 0 {
		return StatusEmpty
	}
	return fmt.Sprintf("Imported %d items. Added: %d, Updated: %d", r.Total(), r.Added, r.Updated)
}

// index búsqueda de artículos existentes por ID y por nombre plegado.
type index struct {
	folder cases.Caser
	byID   map[int64]*entity.Item
	byName map[string]*entity.Item
}

func newIndex(existing []*entity.Item) *index {
	idx := &index{
		folder: cases.Fold(),
		byID:   make(map[int64]*entity.Item, len(existing)),
		byName: make(map[string]*entity.Item, len(existing)),
	}
	for _, it := range existing {
		if it == nil {
			continue
		}
		idx.byID[it.ID] = it
		key := idx.key(it.Name)
		if _, dup := idx.byName[key]; !dup {
			idx.byName[key] = it
		}
	}
	return idx
}

func (x *index) key(name string) string {
	return x.folder.String(strings.TrimSpace(name))
}

// match devuelve el artículo existente asociado a la fila, o nil si es nuevo.
func (x *index) match(row *entity.Item) *entity.Item {
	if row.ID != 0 {
		if it, ok := x.byID[row.ID]; ok {
			return it
		}
	}
	if it, ok := x.byName[x.key(row.Name)]; ok {
		return it
	}
	return nil
}

// Merge asocia cada fila con un artículo existente, en orden de prioridad:
//  1. ID distinto de cero igual al de un artículo existente;
//  2. nombre sin espacios extremos y con plegado de mayúsculas igual (gana el primero);
//  3. si no, artículo nuevo.
//
// En un artículo asociado: la unidad solo se sobrescribe si la importada no está vacía; caducidad
// y cantidad se sobrescriben siempre. Si varias filas caen en el mismo artículo, la última gana.
// No muta existing ni rows.
func Merge(existing []*entity.Item, rows []*entity.Item) Result {
	idx := newIndex(existing)

	var res Result
	merged := make(map[int64]*entity.Item)
	for _, row := range rows {
		if row == nil {
			continue
		}
		target := idx.match(row)
		if target == nil {
			res.Proposed = append(res.Proposed, newFromRow(row))
			res.Added++
			continue
		}

		cur, seen := merged[target.ID]
		if !seen {
			cur = target.Clone()
			merged[target.ID] = cur
			res.Proposed = append(res.Proposed, cur)
		}
		if unit := strings.TrimSpace(row.Unit); unit != "" {
			cur.Unit = unit
		}
		cur.ExpiryDate = nil
		if row.ExpiryDate != nil {
			d := *row.ExpiryDate
			cur.ExpiryDate = &d
		}
		cur.Quantity = row.Quantity
		res.Updated++
	}
	return res
}

func newFromRow(row *entity.Item) *entity.Item {
	it := row.Clone()
	it.ID = 0
	it.Name = strings.TrimSpace(it.Name)
	it.Unit = strings.TrimSpace(it.Unit)
	if it.Unit == "" {
		it.Unit = entity.DefaultUnit
	}
	return it
}
