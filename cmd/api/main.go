package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/kitchen-inventory/internal/bootstrap"
	httpRouter "github.com/jhoicas/kitchen-inventory/internal/interfaces/http"
	"github.com/jhoicas/kitchen-inventory/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	ctx := context.Background()
	a, err := bootstrap.New(ctx, cfg)
	if err != nil {
		panic("iniciar aplicación: " + err.Error())
	}
	defer a.Close()
	log := a.Log

	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("addr", cfg.HTTP.Addr()).
		Msg("iniciando aplicación")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		Inventory:   a.Inventory,
		Reports:     a.Reports,
		Support:     a.Support,
		Preferences: a.Preferences,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
