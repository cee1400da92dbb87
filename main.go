package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"

	"workday-admin/internal/config"
	"workday-admin/internal/handlers"
	"workday-admin/internal/logger"
	"workday-admin/internal/middleware"
	"workday-admin/internal/routes"
	sessionstore "workday-admin/internal/session"
	"workday-admin/internal/timeapi"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Sessions live in sqlite so logins survive a restart
	storage, err := sessionstore.NewStorage(cfg.SessionDBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SessionDBPath).Msg("open session store")
	}
	defer storage.Close()

	store := session.New(session.Config{
		Storage:        storage,
		CookieHTTPOnly: true,
	})

	api := timeapi.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.APITimeout}, log)

	// Initialize HTML template engine (templates in folder views)
	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger(log))

	routes.SetupRoutes(app, handlers.New(api, store, log), store)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Str("api", cfg.APIBaseURL).Msg("server running")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
