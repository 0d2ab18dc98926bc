package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/reggysosa/tournament-gateway/config"
	"github.com/reggysosa/tournament-gateway/db"
	"github.com/reggysosa/tournament-gateway/events"
	"github.com/reggysosa/tournament-gateway/handlers"
	"github.com/reggysosa/tournament-gateway/repositories"
	api "github.com/reggysosa/tournament-gateway/routes"
	"github.com/reggysosa/tournament-gateway/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("api_prefix", cfg.APIPrefix),
		slog.String("store_driver", cfg.StoreDriver))

	if err := run(cfg, logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	warnOnServiceRoleKey(logger)

	factory, closeStore, err := newStoreFactory(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Инициализация WebSocket Hub
	hub := events.NewHub(logger)

	hopts := handlers.Options{
		Events:             hub,
		Now:                time.Now,
		Logger:             logger,
		DegradeListOnError: cfg.DegradeListOnError,
	}
	live := services.NewLiveStatusChecker(&http.Client{Timeout: cfg.StatusTimeout}, cfg.DecAPIBaseURL, cfg.TwitchChannel, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, cfg.APIPrefix, factory, logger, api.Handlers{
		Teams:         handlers.NewTeamHandler(hopts),
		Invites:       handlers.NewInviteHandler(hopts),
		Tournaments:   handlers.NewTournamentHandler(hopts),
		Registrations: handlers.NewRegistrationHandler(hopts),
		Status:        handlers.NewStatusHandler(factory, live, logger),
		WebSocket:     handlers.NewWebSocketHandler(hub, logger),
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("websocket hub started")
		return hub.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Ожидание сигнала завершения или падения сервера
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return err
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}

// newStoreFactory выбирает бэкенд хранилища. Для postgres открывается общий пул,
// его закрывает возвращённая функция.
func newStoreFactory(cfg *config.Config, logger *slog.Logger) (repositories.StoreFactory, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		var pool *sql.DB
		if cfg.DatabaseURL == "" {
			logger.Warn("DATABASE_URL is not set, store routes will answer missing_env")
		} else {
			var err error
			pool, err = db.Connect(cfg.DatabaseURL, 5*time.Second)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
			}
			logger.Info("database connection established")

			if cfg.RunMigrations {
				if err := db.Migrate(cfg.DatabaseURL); err != nil {
					pool.Close()
					return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
				}
				logger.Info("database migrations applied")
			}
		}

		closeFn := func() {
			if pool == nil {
				return
			}
			if err := pool.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}
		return repositories.NewPostgresFactory(pool), closeFn, nil

	default:
		client := &http.Client{Timeout: cfg.StoreTimeout}
		return repositories.NewPostgRESTFactory(client), func() {}, nil
	}
}

// warnOnServiceRoleKey предупреждает, если шлюз ходит в Supabase с ключом service_role:
// такой ключ обходит RLS.
func warnOnServiceRoleKey(logger *slog.Logger) {
	settings, err := config.LoadStoreSettings()
	if err != nil {
		logger.Warn("store settings are not available yet", slog.Any("error", err))
		return
	}
	role, err := settings.KeyRole()
	if err != nil {
		logger.Debug("store api key is not a decodable JWT", slog.Any("error", err))
		return
	}
	if role == "service_role" {
		logger.Warn("store api key has the service_role role and bypasses row level security")
	}
}
