package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/kitchen-inventory/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory/internal/domain"
	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/importer"
	"github.com/jhoicas/kitchen-inventory/internal/domain/inventory"
	"github.com/jhoicas/kitchen-inventory/internal/domain/ledger"
	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/csvcodec"
	"github.com/jhoicas/kitchen-inventory/pkg/logger"
)

// InventoryUseCase orquesta guardado, borrado, importación y exportación sobre el Store.
// Cada operación que escribe corre en una sola transacción y deja un movimiento por cada
// cambio de cantidad. Solo una operación de escritura a la vez: la segunda falla con ErrBusy.
type InventoryUseCase struct {
	store Store
	log   *logger.Logger
	user  string

	now       func() time.Time
	attention func() inventory.AttentionRule

	busy sync.Mutex
}

// NewInventoryUseCase construye el caso de uso. user es el actor que se registra en los movimientos.
func NewInventoryUseCase(store Store, log *logger.Logger, user string) *InventoryUseCase {
	user = strings.TrimSpace(user)
	if utf8.RuneCountInString(user) > entity.MaxUserLength {
		user = string([]rune(user)[:entity.MaxUserLength])
	}
	return &InventoryUseCase{
		store:     store,
		log:       log,
		user:      user,
		now:       func() time.Time { return time.Now().UTC() },
		attention: inventory.DefaultAttentionRule,
	}
}

// SetClock reemplaza el reloj (tests).
func (uc *InventoryUseCase) SetClock(now func() time.Time) { uc.now = now }

// SetAttentionRule fija de dónde se leen los umbrales de "requiere atención" (preferencias).
func (uc *InventoryUseCase) SetAttentionRule(fn func() inventory.AttentionRule) { uc.attention = fn }

// AttentionRule umbrales vigentes.
func (uc *InventoryUseCase) AttentionRule() inventory.AttentionRule { return uc.attention() }

// User actor configurado.
func (uc *InventoryUseCase) User() string { return uc.user }

// Now instante según el reloj del caso de uso.
func (uc *InventoryUseCase) Now() time.Time { return uc.now() }

func (uc *InventoryUseCase) acquire() (func(), error) {
	if !uc.busy.TryLock() {
		return nil, domain.ErrBusy
	}
	return uc.busy.Unlock, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escritura
// ──────────────────────────────────────────────────────────────────────────────

// SaveChanges persiste el estado propuesto de los artículos y registra los movimientos
// que explican cada cambio de cantidad. Un artículo inválido bloquea todo el guardado.
func (uc *InventoryUseCase) SaveChanges(ctx context.Context, proposed []*entity.Item) (ledger.Plan, error) {
	if len(proposed) == 0 {
		return ledger.Plan{}, domain.ErrNoItems
	}
	if err := validateProposed(proposed); err != nil {
		return ledger.Plan{}, err
	}
	release, err := uc.acquire()
	if err != nil {
		return ledger.Plan{}, err
	}
	defer release()

	opID := uuid.NewString()
	ctx = context.WithoutCancel(ctx)
	var plan ledger.Plan
	err = uc.store.Run(ctx, func(items repository.ItemRepository, movs repository.StockMovementRepository) error {
		ids := existingIDs(proposed)
		prior, err := items.QuantitiesByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if _, ok := prior[id]; !ok {
				return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
			}
		}
		plan = ledger.Reconcile(proposed, prior, ledger.SaveOptions(uc.now(), uc.user))
		if err := keepCreatedAt(ctx, items, plan.Upserts); err != nil {
			return err
		}
		return applyPlan(ctx, plan, items, movs)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("op_id", opID).Msg("save items failed")
		return ledger.Plan{}, err
	}
	s := plan.Summary()
	uc.log.Info().Str("op_id", opID).Int("created", s.Created).Int("updated", s.Updated).
		Int("movements", s.Movements).Msg("items saved")
	return plan, nil
}

// DeleteItem elimina un artículo. Dentro de la misma transacción relee su cantidad (bloqueando la
// fila cuando el motor lo permite) y, si no es cero, registra un Adjust por esa cantidad.
func (uc *InventoryUseCase) DeleteItem(ctx context.Context, id int64) (*entity.StockMovement, error) {
	release, err := uc.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	opID := uuid.NewString()
	ctx = context.WithoutCancel(ctx)
	var mv *entity.StockMovement
	err = uc.store.Run(ctx, func(items repository.ItemRepository, movs repository.StockMovementRepository) error {
		it, err := items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if it == nil {
			return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		q, err := items.QuantitiesByIDs(ctx, []int64{id})
		if err != nil {
			return err
		}
		last, ok := q[id]
		if !ok {
			last = it.Quantity
		}
		mv = ledger.ForDelete(it, last, ledger.SaveOptions(uc.now(), uc.user))
		if mv != nil {
			if err := movs.Create(ctx, mv); err != nil {
				return err
			}
		}
		return items.Delete(ctx, id)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("op_id", opID).Int64("item_id", id).Msg("delete item failed")
		return nil, err
	}
	uc.log.Info().Str("op_id", opID).Int64("item_id", id).Bool("adjusted", mv != nil).Msg("item deleted")
	return mv, nil
}

// ImportCSV lee artículos del texto CSV, los fusiona con los existentes (por ID o nombre sin
// distinguir mayúsculas) y guarda el resultado como un único guardado. Sin filas no escribe nada.
func (uc *InventoryUseCase) ImportCSV(ctx context.Context, text string) (dto.ImportResult, error) {
	rows, err := csvcodec.ParseItems(text)
	if err != nil {
		return dto.ImportResult{}, err
	}
	if len(rows) == 0 {
		return dto.ImportResult{StatusMessage: importer.StatusEmpty}, nil
	}

	release, err := uc.acquire()
	if err != nil {
		return dto.ImportResult{}, err
	}
	defer release()

	opID := uuid.NewString()
	ctx = context.WithoutCancel(ctx)
	var res importer.Result
	err = uc.store.Run(ctx, func(items repository.ItemRepository, movs repository.StockMovementRepository) error {
		existing, err := items.List(ctx)
		if err != nil {
			return err
		}
		res = importer.Merge(existing, rows)
		for _, it := range res.Proposed {
			if err := it.Validate(); err != nil {
				return err
			}
		}
		prior, err := items.QuantitiesByIDs(ctx, existingIDs(res.Proposed))
		if err != nil {
			return err
		}
		plan := ledger.Reconcile(res.Proposed, prior, ledger.ImportOptions(uc.now(), uc.user))
		return applyPlan(ctx, plan, items, movs)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("op_id", opID).Int("rows", len(rows)).Msg("import csv failed")
		return dto.ImportResult{}, err
	}
	uc.log.Info().Str("op_id", opID).Int("added", res.Added).Int("updated", res.Updated).Msg("csv imported")
	return dto.ImportResult{Added: res.Added, Updated: res.Updated, StatusMessage: res.Status()}, nil
}

// applyPlan escribe primero los artículos (los nuevos reciben ID) y luego los movimientos.
func applyPlan(ctx context.Context, plan ledger.Plan, items repository.ItemRepository, movs repository.StockMovementRepository) error {
	for _, it := range plan.Upserts {
		if it.IsNew() {
			if err := items.Create(ctx, it); err != nil {
				return err
			}
			continue
		}
		if err := items.Update(ctx, it); err != nil {
			return err
		}
	}
	for _, mv := range plan.Movements {
		mv.ResolveItemID()
		if err := mv.Validate(); err != nil {
			return err
		}
		if err := movs.Create(ctx, mv); err != nil {
			return err
		}
	}
	return nil
}

// keepCreatedAt copia la fecha de creación persistida en los artículos existentes del plan;
// el estado propuesto no la trae y Update no la escribe.
func keepCreatedAt(ctx context.Context, items repository.ItemRepository, upserts []*entity.Item) error {
	for _, it := range upserts {
		if it.IsNew() {
			continue
		}
		row, err := items.GetByID(ctx, it.ID)
		if err != nil {
			return err
		}
		if row == nil {
			return fmt.Errorf("item %d: %w", it.ID, domain.ErrNotFound)
		}
		it.CreatedAtUTC = row.CreatedAtUTC
	}
	return nil
}

func validateProposed(proposed []*entity.Item) error {
	seen := make(map[int64]bool, len(proposed))
	for _, it := range proposed {
		if it == nil {
			return fmt.Errorf("%w: nil item", domain.ErrInvalidInput)
		}
		if err := it.Validate(); err != nil {
			return err
		}
		if it.ID == 0 {
			continue
		}
		if it.ID < 0 || seen[it.ID] {
			return fmt.Errorf("%w: duplicate or invalid id %d", domain.ErrInvalidInput, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}

func existingIDs(items []*entity.Item) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if it != nil && !it.IsNew() {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura y exportación
// ──────────────────────────────────────────────────────────────────────────────

// ListItems artículos ordenados por nombre. Query filtra por nombre o unidad sin distinguir
// mayúsculas; AttentionOnly deja solo los que tienen poco stock o caducan pronto.
func (uc *InventoryUseCase) ListItems(ctx context.Context, filter dto.ItemFilter) ([]*entity.Item, error) {
	all, err := uc.store.Items().List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	rule := uc.attention()
	today := uc.now()
	out := make([]*entity.Item, 0, len(all))
	for _, it := range all {
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) && !strings.Contains(strings.ToLower(it.Unit), q) {
			continue
		}
		if filter.AttentionOnly && !rule.NeedsAttention(it, today) {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// ListMovements libro de movimientos, del más reciente al más antiguo.
func (uc *InventoryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return uc.store.Movements().List(ctx, filter)
}

// Snapshot artículos y movimientos actuales (exportación a hoja de cálculo e informes).
func (uc *InventoryUseCase) Snapshot(ctx context.Context) ([]*entity.Item, []*entity.StockMovement, error) {
	items, err := uc.ListItems(ctx, dto.ItemFilter{})
	if err != nil {
		return nil, nil, err
	}
	movs, err := uc.ListMovements(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, nil, err
	}
	return items, movs, nil
}

// ExportItemsCSV todos los artículos en formato CSV.
func (uc *InventoryUseCase) ExportItemsCSV(ctx context.Context) (string, error) {
	items, err := uc.ListItems(ctx, dto.ItemFilter{})
	if err != nil {
		return "", err
	}
	return csvcodec.ExportItems(items), nil
}

// ExportMovementsCSV movimientos en formato CSV; el nombre sale del artículo actual si aún existe.
func (uc *InventoryUseCase) ExportMovementsCSV(ctx context.Context, filter repository.MovementFilter) (string, error) {
	items, err := uc.store.Items().List(ctx)
	if err != nil {
		return "", err
	}
	movs, err := uc.ListMovements(ctx, filter)
	if err != nil {
		return "", err
	}
	names := make(map[int64]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}
	return csvcodec.ExportMovements(movs, names), nil
}
