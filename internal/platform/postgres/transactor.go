package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/finances-api/internal/store"
)

// Transactor runs units of work inside a database transaction, handing the
// callback stores bound to that transaction.
type Transactor struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTransactor creates a Transactor over db.
func NewTransactor(db *sql.DB, logger *slog.Logger) *Transactor {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transactor{db: db, logger: logger}
}

var _ store.Transactor = (*Transactor)(nil)

// InTx implements store.Transactor.
func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context, s store.Stores) error) error {
	return store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, store.Stores{
			Users:   NewPostgresUserStore(tx, t.logger),
			Entries: NewPostgresEntryStore(tx, t.logger),
		})
	})
}
