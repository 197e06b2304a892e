package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/finances-api/internal/platform/logger"
)

// Stores groups the repositories that can take part in one unit of work.
type Stores struct {
	Users   UserStore
	Entries EntryStore
}

// Transactor runs fn as a single unit of work. The Stores handed to fn are
// bound to that unit; fn's error aborts it, nil commits it.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}

// TxFn is the body of a SQL unit of work. SQL-backed Transactors build their
// Stores over tx inside it.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction begins a transaction on db, runs fn in it and commits when
// fn returns nil. An error from fn rolls the transaction back and is returned
// as is, unless the rollback fails too. A panic in fn rolls back and is
// re-raised.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction after panic",
				slog.String("error", rbErr.Error()),
				slog.Any("panic", p))
		} else {
			log.Error("rolled back transaction after panic", slog.Any("panic", p))
		}
		// ALLOW-PANIC: re-raising the caller's panic
		panic(p)
	}()

	if err := fn(ctx, tx); err != nil {
		return rollback(tx, log, err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Debug("unit of work committed")
	return nil
}

// rollback aborts tx after cause and returns the error RunInTransaction
// reports for it.
func rollback(tx *sql.Tx, log *slog.Logger, cause error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		log.Error("failed to roll back transaction",
			slog.String("rollback_error", rbErr.Error()),
			slog.String("cause", cause.Error()))
		return fmt.Errorf("error rolling back transaction: %v (cause: %w)", rbErr, cause)
	}

	log.Debug("unit of work rolled back", slog.String("cause", cause.Error()))
	return cause
}
