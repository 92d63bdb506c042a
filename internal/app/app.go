package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/config"
	"github.com/aulasync/aulasync-server/internal/delivery/httpd"
	"github.com/aulasync/aulasync-server/internal/repository"
	"github.com/aulasync/aulasync-server/internal/service"
	"github.com/aulasync/aulasync-server/internal/service/integration"
	"github.com/aulasync/aulasync-server/internal/storage"
)

// App agrupa las dependencias de larga vida del servidor.
type App struct {
	cfg    *config.Config
	logger zerolog.Logger
	events integration.EventPublisher
	server *http.Server
}

func New(cfg *config.Config, logger zerolog.Logger, db *sql.DB) (*App, error) {
	objectStorage, err := storage.NewMinIOStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	// El broker es opcional: sin el los eventos no se publican pero el
	// servicio sigue funcionando.
	events, err := integration.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("RabbitMQ unavailable, continuing without event publishing")
		events = nil
	}

	usuarioRepo := repository.NewUsuarioRepository(db, logger)
	claseRepo := repository.NewClaseRepository(db, logger)
	anuncioRepo := repository.NewAnuncioRepository(db, logger)
	entregaRepo := repository.NewEntregaRepository(db, logger)
	invitacionRepo := repository.NewInvitacionRepository(db, logger)
	archivoRepo := repository.NewArchivoRepository(db, logger)
	notificacionRepo := repository.NewNotificacionRepository(db, logger)

	archivoService := service.NewArchivoService(archivoRepo, objectStorage, logger)
	authService := service.NewAuthService(usuarioRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)
	claseService := service.NewClaseService(claseRepo, usuarioRepo, logger)
	anuncioService := service.NewAnuncioService(anuncioRepo, claseRepo, entregaRepo, archivoService, events, logger)
	entregaService := service.NewEntregaService(
		entregaRepo, anuncioRepo, claseRepo, archivoService, events, cfg.Assignments.RejectLate, logger)
	invitacionService := service.NewInvitacionService(invitacionRepo, claseRepo, usuarioRepo, logger)
	notificacionService := service.NewNotificacionService(notificacionRepo, logger)

	handler := httpd.NewHandler(
		authService,
		claseService,
		anuncioService,
		entregaService,
		invitacionService,
		notificacionService,
		archivoService,
		cfg.Uploads.MaxSizeMB<<20,
		logger,
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(cfg.Server.WriteTimeout))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		events: events,
		server: server,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Str("address", a.cfg.Server.Address).Msg("Starting HTTP server")

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down server")

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.events != nil {
		a.events.Close()
	}

	return nil
}
