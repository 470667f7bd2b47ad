package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory/internal/application/usecase"
)

// SupportHandler diagnóstico de base de datos y paquete de soporte.
type SupportHandler struct {
	uc *usecase.SupportUseCase
}

// NewSupportHandler construye el handler.
func NewSupportHandler(uc *usecase.SupportUseCase) *SupportHandler {
	return &SupportHandler{uc: uc}
}

// DatabaseInfo godoc
// @Summary      Información de la base de datos
// @Tags         diagnostics
// @Produce      json
// @Success      200  {object}  database.Info
// @Router       /api/diagnostics/database [get]
func (h *SupportHandler) DatabaseInfo(c *fiber.Ctx) error {
	return c.JSON(h.uc.DatabaseInfo(c.Context()))
}

// Bundle godoc
// @Summary      Descargar paquete de diagnóstico
// @Tags         diagnostics
// @Produce      application/zip
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/diagnostics/bundle [get]
func (h *SupportHandler) Bundle(c *fiber.Ctx) error {
	out, name, err := h.uc.Bundle(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/zip", name, out)
}
