// Package bootstrap arma las dependencias compartidas por la API y el CLI.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/kitchen-inventory/internal/application/inventory"
	"github.com/jhoicas/kitchen-inventory/internal/application/usecase"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/database"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/diagnostics"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/preferences"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/xlsx"
	"github.com/jhoicas/kitchen-inventory/pkg/config"
	"github.com/jhoicas/kitchen-inventory/pkg/logger"
)

// App dependencias ya conectadas.
type App struct {
	Config      *config.Config
	Log         *logger.Logger
	Store       database.Store
	Preferences *preferences.Store
	Inventory   *inventory.InventoryUseCase
	Reports     *usecase.ReportUseCase
	Support     *usecase.SupportUseCase
}

// New abre logs, preferencias y base de datos según cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	logCfg := logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}
	if cfg.Log.ToFile {
		logCfg.Dir = cfg.App.LogsDir()
	}
	log := logger.New(logCfg)

	prefs, err := preferences.Open(cfg.App.PreferencesPath())
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("open preferences: %w", err)
	}

	store, err := database.Open(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Str("provider", cfg.DB.Provider).
			Str("target", database.Target(cfg.DB)).Msg("database unavailable")
		_ = log.Close()
		return nil, err
	}

	inv := inventory.NewInventoryUseCase(store, log, cfg.App.User)
	inv.SetAttentionRule(prefs.AttentionRule)

	a := &App{
		Config:      cfg,
		Log:         log,
		Store:       store,
		Preferences: prefs,
		Inventory:   inv,
		Reports:     usecase.NewReportUseCase(inv, pdf.NewStockReportGenerator(), xlsx.Write),
		Support:     usecase.NewSupportUseCase(cfg, store, diagnostics.NewBuilder(log), prefs.Path()),
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("provider", cfg.DB.Provider).
		Str("target", database.Target(cfg.DB)).
		Str("user", inv.User()).
		Msg("inventario listo")
	return a, nil
}

// Close cierra la base de datos y el archivo de log.
func (a *App) Close() error {
	err := a.Store.Close()
	if cerr := a.Log.Close(); err == nil {
		err = cerr
	}
	return err
}
