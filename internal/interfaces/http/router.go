package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kitchen-inventory/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory/internal/application/usecase"
)

// SwaggerFile especificación OpenAPI servida en /docs si existe.
const SwaggerFile = "./docs/swagger.json"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	Inventory   *inventory.InventoryUseCase
	Reports     *usecase.ReportUseCase
	Support     *usecase.SupportUseCase
	Preferences PreferenceStore
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: SwaggerFile,
			Path:     "docs",
			Title:    deps.AppName + " API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	inventoryHandler := NewInventoryHandler(deps.Inventory)
	api.Get("/items", inventoryHandler.ListItems)
	api.Put("/items", inventoryHandler.SaveItems)
	api.Delete("/items/:id", inventoryHandler.DeleteItem)
	api.Get("/movements", inventoryHandler.ListMovements)

	transferHandler := NewTransferHandler(deps.Inventory, deps.Reports)
	api.Post("/import/csv", transferHandler.ImportCSV)
	api.Get("/export/items.csv", transferHandler.ExportItemsCSV)
	api.Get("/export/movements.csv", transferHandler.ExportMovementsCSV)
	api.Get("/export/inventory.xlsx", transferHandler.ExportXLSX)
	api.Get("/reports/stock.pdf", transferHandler.StockReportPDF)

	supportHandler := NewSupportHandler(deps.Support)
	api.Get("/diagnostics/database", supportHandler.DatabaseInfo)
	api.Get("/diagnostics/bundle", supportHandler.Bundle)

	prefsHandler := NewPreferencesHandler(deps.Preferences)
	api.Get("/preferences/:key", prefsHandler.Get)
	api.Put("/preferences/:key", prefsHandler.Put)
}
