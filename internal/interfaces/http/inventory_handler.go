package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
)

// InventoryHandler maneja artículos y movimientos.
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ListItems godoc
// @Summary      Listar artículos
// @Tags         items
// @Produce      json
// @Param        q          query  string  false  "Texto a buscar en nombre o unidad"
// @Param        attention  query  bool    false  "Solo los que requieren atención"
// @Success      200  {array}   dto.ItemDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	var f dto.ItemFilter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	items, err := h.uc.ListItems(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ItemsToDTO(items, h.uc.AttentionRule(), h.uc.Now()))
}

// SaveItems godoc
// @Summary      Guardar cambios
// @Description  Persiste el estado propuesto de los artículos y registra un movimiento por cada
//
//	cambio de cantidad. Todo o nada.
//
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveItemsRequest  true  "Artículos editados; id 0 = nuevo"
// @Success      200   {object}  dto.SaveItemsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [put]
func (h *InventoryHandler) SaveItems(c *fiber.Ctx) error {
	var in dto.SaveItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	items, err := inventory.ItemsFromInput(in.Items)
	if err != nil {
		return writeError(c, err)
	}
	plan, err := h.uc.SaveChanges(c.Context(), items)
	if err != nil {
		return writeError(c, err)
	}
	s := plan.Summary()
	return c.JSON(dto.SaveItemsResponse{
		Created:   s.Created,
		Updated:   s.Updated,
		Movements: s.Movements,
		Items:     inventory.ItemsToDTO(plan.Upserts, h.uc.AttentionRule(), h.uc.Now()),
	})
}

// DeleteItem godoc
// @Summary      Eliminar artículo
// @Description  Si la cantidad no es cero registra un Adjust por la cantidad eliminada.
// @Tags         items
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {object}  dto.MovementDTO
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	mv, err := h.uc.DeleteItem(c.Context(), int64(id))
	if err != nil {
		return writeError(c, err)
	}
	if mv == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(inventory.MovementToDTO(mv))
}

// ListMovements godoc
// @Summary      Libro de movimientos
// @Tags         movements
// @Produce      json
// @Param        item_id  query  int  false  "Filtrar por artículo"
// @Param        limit    query  int  false  "Máximo de filas"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	f, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	list, err := h.uc.ListMovements(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.MovementsToDTO(list))
}

func movementFilter(c *fiber.Ctx) (repository.MovementFilter, error) {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return repository.MovementFilter{}, err
	}
	f := repository.MovementFilter{Limit: q.Limit}
	if q.Limit < 0 {
		f.Limit = 0
	}
	if q.ItemID > 0 {
		id := q.ItemID
		f.ItemID = &id
	}
	return f, nil
}
