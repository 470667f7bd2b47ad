package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/database"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/diagnostics"
	"github.com/jhoicas/kitchen-inventory/pkg/config"
)

// SupportUseCase información de la base de datos y paquete de diagnóstico para soporte.
type SupportUseCase struct {
	cfg       *config.Config
	pinger    database.Pinger
	builder   BundleBuilder
	prefsPath string
}

// NewSupportUseCase construye el caso de uso. pinger puede ser nil si no hay conexión.
func NewSupportUseCase(cfg *config.Config, pinger database.Pinger, builder BundleBuilder, prefsPath string) *SupportUseCase {
	return &SupportUseCase{cfg: cfg, pinger: pinger, builder: builder, prefsPath: prefsPath}
}

// DatabaseInfo proveedor, destino, versión, estado y connection string sin credenciales.
func (uc *SupportUseCase) DatabaseInfo(ctx context.Context) database.Info {
	return database.Describe(ctx, uc.cfg, uc.pinger)
}

// Bundle ZIP de diagnóstico con su nombre de archivo sugerido.
func (uc *SupportUseCase) Bundle(ctx context.Context) ([]byte, string, error) {
	info := uc.DatabaseInfo(ctx)
	src := diagnostics.Source{
		AppName:         uc.cfg.App.Name,
		AppEnv:          uc.cfg.App.Env,
		User:            uc.cfg.App.User,
		DataDir:         uc.cfg.App.DataDir,
		Database:        info,
		PreferencesPath: uc.prefsPath,
		LogsDir:         uc.cfg.App.LogsDir(),
	}
	if !uc.cfg.DB.IsPostgres() {
		src.SQLitePath = uc.cfg.DB.SQLitePath
	}
	out, err := uc.builder.Build(src)
	if err != nil {
		return nil, "", fmt.Errorf("diagnostics: %w", err)
	}
	return out, "kitchen-diagnostics-" + time.Now().UTC().Format("20060102-150405") + ".zip", nil
}
