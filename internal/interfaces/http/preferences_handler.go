package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory/internal/application/dto"
)

// PreferenceStore lo que el handler necesita de las preferencias.
type PreferenceStore interface {
	Get(key string) (any, bool)
	Set(key string, value any) error
	Save() error
}

// PreferenceValue body y respuesta de /api/preferences/:key.
type PreferenceValue struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// PreferencesHandler lectura y escritura de preferencias por clave.
type PreferencesHandler struct {
	store PreferenceStore
}

// NewPreferencesHandler construye el handler.
func NewPreferencesHandler(store PreferenceStore) *PreferencesHandler {
	return &PreferencesHandler{store: store}
}

// Get godoc
// @Summary      Leer preferencia
// @Tags         preferences
// @Produce      json
// @Param        key  path  string  true  "Clave (ej. attention.low_stock_threshold)"
// @Success      200  {object}  PreferenceValue
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/preferences/{key} [get]
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	key := c.Params("key")
	v, ok := h.store.Get(key)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "preferencia no encontrada"})
	}
	return c.JSON(PreferenceValue{Key: key, Value: v})
}

// Put godoc
// @Summary      Guardar preferencia
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        key   path  string           true  "Clave"
// @Param        body  body  PreferenceValue  true  "Solo se usa value"
// @Success      200   {object}  PreferenceValue
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/preferences/{key} [put]
func (h *PreferencesHandler) Put(c *fiber.Ctx) error {
	key := c.Params("key")
	var in PreferenceValue
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.store.Set(key, in.Value); err != nil {
		return writeError(c, err)
	}
	if err := h.store.Save(); err != nil {
		return writeError(c, err)
	}
	return c.JSON(PreferenceValue{Key: key, Value: in.Value})
}
