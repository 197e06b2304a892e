package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/finances-api/internal/config"
	"github.com/phrazzld/finances-api/internal/platform/memory"
	"github.com/phrazzld/finances-api/internal/platform/postgres"
	"github.com/phrazzld/finances-api/internal/service"
	"github.com/phrazzld/finances-api/internal/service/auth"
	"github.com/phrazzld/finances-api/internal/store"
)

// application holds the process-wide dependencies and releases them on
// shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when running on the memory backend.
	db *sql.DB

	userService  service.UserService
	entryService service.EntryService
}

// backend groups the store implementations the services run on.
type backend struct {
	users      store.UserStore
	entries    store.EntryStore
	transactor store.Transactor
}

// newApplication connects the configured backend and builds the services.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var b backend
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := openDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		app.db = db

		if cfg.Database.MigrateOnStart {
			if err := postgres.Migrate(ctx, db, "up", logger); err != nil {
				app.cleanup()
				return nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		b = postgresBackend(db, logger)

	case config.DriverMemory:
		logger.Warn("using the in-memory store, data is lost on exit")
		b = memoryBackend(logger)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if err := app.initServices(b); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("application initialized successfully")
	return app, nil
}

func postgresBackend(db *sql.DB, logger *slog.Logger) backend {
	return backend{
		users:      postgres.NewPostgresUserStore(db, logger),
		entries:    postgres.NewPostgresEntryStore(db, logger),
		transactor: postgres.NewTransactor(db, logger),
	}
}

func memoryBackend(logger *slog.Logger) backend {
	db := memory.NewDB(logger)
	return backend{
		users:      db.Users(),
		entries:    db.Entries(),
		transactor: db,
	}
}

func (app *application) initServices(b backend) error {
	var err error

	// SECURITY: passwords are stored and compared in plaintext until a
	// hashing verifier replaces this one.
	app.userService, err = service.NewUserService(b.users, b.transactor, auth.NewPlaintextVerifier(), app.logger)
	if err != nil {
		return fmt.Errorf("failed to create user service: %w", err)
	}

	app.entryService, err = service.NewEntryService(b.entries, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create entry service: %w", err)
	}

	return nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database connection, if any.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
		app.db = nil
	}
	app.logger.Info("application shutdown completed")
}
