package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory/internal/application/usecase"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/csvcodec"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/xlsx"
)

const contentTypeCSV = "text/csv; charset=utf-8"

// TransferHandler importación y exportaciones (CSV, xlsx, PDF).
type TransferHandler struct {
	inv     *inventory.InventoryUseCase
	reports *usecase.ReportUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(inv *inventory.InventoryUseCase, reports *usecase.ReportUseCase) *TransferHandler {
	return &TransferHandler{inv: inv, reports: reports}
}

// ImportCSV godoc
// @Summary      Importar artículos desde CSV
// @Description  Acepta el CSV como cuerpo (text/csv) o como archivo multipart en el campo "file".
// @Tags         transfer
// @Accept       plain
// @Produce      json
// @Success      200  {object}  dto.ImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/import/csv [post]
func (h *TransferHandler) ImportCSV(c *fiber.Ctx) error {
	raw := c.Body()
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo")
		}
		defer f.Close()
		raw, err = io.ReadAll(f)
		if err != nil {
			return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo")
		}
	}
	res, err := h.inv.ImportCSV(c.Context(), csvcodec.DecodeText(raw))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// ExportItemsCSV godoc
// @Summary      Exportar artículos a CSV
// @Tags         transfer
// @Produce      text/csv
// @Success      200
// @Router       /api/export/items.csv [get]
func (h *TransferHandler) ExportItemsCSV(c *fiber.Ctx) error {
	text, err := h.inv.ExportItemsCSV(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, contentTypeCSV, "items.csv", []byte(text))
}

// ExportMovementsCSV godoc
// @Summary      Exportar movimientos a CSV
// @Tags         transfer
// @Produce      text/csv
// @Param        item_id  query  int  false  "Filtrar por artículo"
// @Param        limit    query  int  false  "Máximo de filas"
// @Success      200
// @Router       /api/export/movements.csv [get]
func (h *TransferHandler) ExportMovementsCSV(c *fiber.Ctx) error {
	f, err := movementFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	text, err := h.inv.ExportMovementsCSV(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, contentTypeCSV, "movements.csv", []byte(text))
}

// ExportXLSX godoc
// @Summary      Exportar inventario a Excel
// @Tags         transfer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/export/inventory.xlsx [get]
func (h *TransferHandler) ExportXLSX(c *fiber.Ctx) error {
	out, name, err := h.reports.WorkbookXLSX(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, xlsx.ContentType, name, out)
}

// StockReportPDF godoc
// @Summary      Informe de existencias en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200
// @Router       /api/reports/stock.pdf [get]
func (h *TransferHandler) StockReportPDF(c *fiber.Ctx) error {
	out, name, err := h.reports.StockReportPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", name, out)
}
