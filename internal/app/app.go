package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/db"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/server"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Application aggregates shared infrastructure (store, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store      trivia.Store
	closeStore func()
	http       *http.Server
}

// New bootstraps logger, store and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("driver", cfg.Database.Driver).Msg("starting application bootstrap")

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := store.Ping(ctx); err != nil {
		closeStore()
		return nil, fmt.Errorf("ping store: %w", err)
	}

	triviaHandler := trivia.NewHTTPHandler(store, logger)
	apiServer := server.NewHTTPServer(cfg, logger, store, triviaHandler)

	return &Application{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		closeStore: closeStore,
		http:       apiServer,
	}, nil
}

func openStore(ctx context.Context, cfg *config.App, logger zerolog.Logger) (trivia.Store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if cfg.Database.MigrateOnStart {
			sqlDB, err := sql.Open("pgx", cfg.Postgres.DSN())
			if err != nil {
				return nil, nil, fmt.Errorf("open migration connection: %w", err)
			}
			err = migrateUp(ctx, sqlDB, logger)
			_ = sqlDB.Close()
			if err != nil {
				return nil, nil, err
			}
		}
		pool, err := pgxpool.New(ctx, cfg.Postgres.PoolDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := repository.NewTriviaRepository(repository.NewQueries(pool), pool)
		return store, pool.Close, nil

	case config.DriverGormPostgres:
		gdb, err := repository.OpenGorm(repository.DialectPostgres, cfg.Postgres.DSN(), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := repository.NewGormStore(gdb)
		closeFn := func() { _ = store.Close() }
		if cfg.Database.MigrateOnStart {
			sqlDB, err := gdb.DB()
			if err == nil {
				err = migrateUp(ctx, sqlDB, logger)
			}
			if err != nil {
				closeFn()
				return nil, nil, err
			}
		}
		return store, closeFn, nil

	case config.DriverSQLite:
		gdb, err := repository.OpenGorm(repository.DialectSQLite, cfg.SQLite.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		store := repository.NewGormStore(gdb)
		if err := store.AutoMigrate(); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func migrateUp(ctx context.Context, sqlDB *sql.DB, logger zerolog.Logger) error {
	if err := db.Migrate(ctx, sqlDB, db.CommandUp, ""); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info().Msg("migrations applied")
	return nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.closeStore()

	a.logger.Info().Msg("shutdown complete")
	return runErr
}
