package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/logger"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/repository/task/inmemory"
	"taskboard/internal/repository/task/postgres"
	"taskboard/internal/repository/task/sqlite"
	"taskboard/internal/service"
	"taskboard/internal/worker"
)

type App struct {
	config    *config.Config
	server    *http.Server
	service   *service.TaskService
	worker    *worker.StatsWorker
	shutdowns []func()
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Sync()
	})

	repo, err := a.buildRepository(ctx)
	if err != nil {
		return err
	}

	opts := []service.Option{}
	if a.config.Cache.Enabled {
		client := redis.NewClient(&redis.Options{Addr: a.config.Cache.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("pinging redis: %w", err)
		}
		a.shutdowns = append(a.shutdowns, func() {
			client.Close()
		})

		statsCache := cache.New(client, a.config.Cache.KeyPrefix, a.config.Cache.TTL)
		opts = append(opts, service.WithStatsCache(statsCache))
		logger.Info("App: stats cache enabled", zap.String("redis_addr", a.config.Cache.RedisAddr))
	}

	a.service = service.NewTaskService(repo, opts...)
	if a.config.Cache.Enabled {
		a.worker = worker.NewStatsWorker(a.service, a.config.Cache.WarmInterval)
	}

	a.server = &http.Server{
		Addr:    a.config.ServerAddr(),
		Handler: a.buildRouter(),
	}
	return nil
}

func (a *App) buildRepository(ctx context.Context) (repository.TaskRepository, error) {
	switch a.config.Repository.Type {
	case "postgres":
		store, err := postgres.New(ctx, a.config.Database.URL, postgres.PoolConfig{
			MaxConns:    a.config.Database.MaxConnections,
			MinConns:    a.config.Database.MinConnections,
			IdleTimeout: a.config.Database.IdleTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := store.Migrate(); err != nil {
			store.Close()
			return nil, fmt.Errorf("migrating postgres schema: %w", err)
		}
		a.shutdowns = append(a.shutdowns, store.Close)
		return store, nil

	case "sqlite":
		store, err := sqlite.New(a.config.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		a.shutdowns = append(a.shutdowns, func() {
			store.Close()
		})
		return store, nil

	case "inmemory", "":
		return inmemory.NewTaskStorage(), nil

	default:
		return nil, fmt.Errorf("unknown repository type %q", a.config.Repository.Type)
	}
}

func (a *App) buildRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(a.config.Server.RequestTimeout))
	r.Use(middleware.RateLimit(a.config.Server.RateLimitRPM))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))

	handlers.NewTaskHandler(a.service).Routes(r)
	return r
}

// Run starts the HTTP server and the stats worker and blocks until the
// context is cancelled or the server fails. Shutdown hooks run in reverse
// registration order.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.worker != nil {
		go a.worker.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("App: server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.runShutdowns()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("App: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("App: forced shutdown", err)
	}

	a.runShutdowns()
	return nil
}

func (a *App) runShutdowns() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
