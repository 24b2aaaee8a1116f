// Package main is the entry point for the room filter service.
//
//	@title						Room Filter API
//	@version					1.0.0
//	@description				Filter, sort and paginate a hotel room catalog, statelessly or through debounced per-visitor sessions.
//
//	@contact.name				API Support
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Register the OpenAPI description served at /swagger
	_ "github.com/hotel-site/room-filter/docs"

	roomhttp "github.com/hotel-site/room-filter/internal/adapter/http"
	"github.com/hotel-site/room-filter/internal/adapter/http/middleware"
	"github.com/hotel-site/room-filter/internal/catalog"
	"github.com/hotel-site/room-filter/internal/config"
	"github.com/hotel-site/room-filter/internal/infrastructure/logger"
	"github.com/hotel-site/room-filter/internal/kvstore"
	"github.com/hotel-site/room-filter/internal/query"
	"github.com/hotel-site/room-filter/internal/session"
)

func main() {
	cfg := config.MustLoad()

	appLog := setupLogger(cfg)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("catalog", cfg.Catalog.Path).
		Str("storage", cfg.Storage.Kind).
		Msg("Configuration loaded")

	rooms, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load room catalog")
	}
	log.Info().Int("rooms", len(rooms)).Msg("Room catalog loaded")

	store, err := newStorage(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open listing storage")
	}

	sessions := session.NewManager(rooms, &session.Config{
		IdleTimeout:    cfg.Session.IdleTimeout,
		MaxSessions:    cfg.Session.MaxSessions,
		BasePath:       cfg.Session.BasePath,
		Debounce:       cfg.Filter.Debounce,
		SearchDebounce: cfg.Filter.SearchDebounce,
		PageSize:       cfg.Filter.PageSize,
		Locale:         cfg.Filter.Locale,
		Storage:        store,
		Logger:         appLog,
	})
	stopSweeper := sessions.StartSweeper(cfg.Session.SweepInterval)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, logger.WithComponent(appLog, "http"), cfg.IsDevelopment())

	handler := roomhttp.NewRoomHandler(sessions, cfg.Filter.Locale)
	roomhttp.RegisterRoutes(e, handler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	waitForSignals(cfg, sessions)

	stopSweeper()
	gracefulShutdown(e, cfg)
	sessions.Close()

	log.Info().Msg("Server stopped")
}

// setupLogger builds the application logger and makes it the global zerolog logger.
func setupLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	l := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "room-filter",
		Environment: cfg.App.Env,
	}, os.Stdout)
	logger.SetGlobal(l)

	return l
}

// newStorage opens the store listing state is persisted in.
func newStorage(cfg config.StorageConfig) (query.Storage, error) {
	switch cfg.Kind {
	case config.StorageFile:
		store, err := kvstore.NewFile(cfg.Dir)
		if err != nil {
			return nil, err
		}
		log.Info().Str("dir", store.Dir()).Msg("Persisting listing state to disk")
		return store, nil
	default:
		return kvstore.NewMemory(), nil
	}
}

// waitForSignals blocks until the process is asked to stop. SIGHUP reloads
// the room catalog into every live session.
func waitForSignals(cfg *config.Config, sessions *session.Manager) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sig)

	for s := range sig {
		if s != syscall.SIGHUP {
			return
		}

		rooms, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.Catalog.Path).Msg("Catalog reload failed, keeping current rooms")
			continue
		}
		sessions.SetCatalog(rooms)
	}
}

// gracefulShutdown drains in-flight requests within the configured timeout.
func gracefulShutdown(e *echo.Echo, cfg *config.Config) {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}
}
