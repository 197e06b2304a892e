package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/platform/logger"
	"github.com/phrazzld/finances-api/internal/store"
	"github.com/shopspring/decimal"
)

const entryStoreComponent = "entry_store"

const entryColumns = `id, description, month, year, value, user_id, type, status, created_at`

// PostgresEntryStore implements the store.EntryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEntryStore creates a new PostgreSQL implementation of the EntryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresEntryStore(db store.DBTX, logger *slog.Logger) *PostgresEntryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEntryStore{
		db:     db,
		logger: logger.With(slog.String("component", entryStoreComponent)),
	}
}

// Ensure PostgresEntryStore implements store.EntryStore interface
var _ store.EntryStore = (*PostgresEntryStore)(nil)

// Create implements store.EntryStore.Create.
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key violation).
func (s *PostgresEntryStore) Create(ctx context.Context, entry *domain.FinancialEntry) error {
	log := logger.ForComponent(ctx, s.logger, entryStoreComponent)

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO financial_entries (description, month, year, value, user_id, type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		entry.Description,
		entry.Month,
		entry.Year,
		entry.Value,
		entry.UserID,
		string(entry.Type),
		string(entry.Status),
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during entry creation",
				slog.String("user_id", entry.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, entry.UserID)
		}
		log.Error("failed to create entry",
			slog.String("error", err.Error()),
			slog.String("user_id", entry.UserID.String()))
		return MapError(err)
	}

	log.Info("entry created successfully",
		slog.String("entry_id", entry.ID.String()),
		slog.String("user_id", entry.UserID.String()),
		slog.String("type", string(entry.Type)))
	return nil
}

// Update implements store.EntryStore.Update.
// Returns store.ErrEntryNotFound if the entry does not exist.
func (s *PostgresEntryStore) Update(ctx context.Context, entry *domain.FinancialEntry) error {
	log := logger.ForComponent(ctx, s.logger, entryStoreComponent).
		With(slog.String("entry_id", entry.ID.String()))

	query := `
		UPDATE financial_entries
		SET description = $1, month = $2, year = $3, value = $4,
		    user_id = $5, type = $6, status = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(ctx, query,
		entry.Description,
		entry.Month,
		entry.Year,
		entry.Value,
		entry.UserID,
		string(entry.Type),
		string(entry.Status),
		entry.ID,
	)
	if err != nil {
		log.Error("failed to update entry", slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrEntryNotFound); err != nil {
		log.Debug("entry not found for update")
		return err
	}

	log.Debug("entry updated", slog.String("status", string(entry.Status)))
	return nil
}

// Delete implements store.EntryStore.Delete.
// Returns store.ErrEntryNotFound if the entry does not exist.
func (s *PostgresEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.ForComponent(ctx, s.logger, entryStoreComponent).
		With(slog.String("entry_id", id.String()))

	result, err := s.db.ExecContext(ctx, `DELETE FROM financial_entries WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete entry", slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrEntryNotFound); err != nil {
		log.Debug("entry not found for delete")
		return err
	}

	log.Info("entry deleted")
	return nil
}

// GetByID implements store.EntryStore.GetByID.
// Returns store.ErrEntryNotFound if the entry does not exist.
func (s *PostgresEntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FinancialEntry, error) {
	log := logger.ForComponent(ctx, s.logger, entryStoreComponent)

	query := `SELECT ` + entryColumns + ` FROM financial_entries WHERE id = $1`
	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("entry not found", slog.String("entry_id", id.String()))
			return nil, store.ErrEntryNotFound
		}
		log.Error("failed to get entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return nil, fmt.Errorf("failed to get entry: %w", MapError(err))
	}

	return entry, nil
}

// Search implements store.EntryStore.Search.
func (s *PostgresEntryStore) Search(ctx context.Context, filter store.EntryFilter) ([]*domain.FinancialEntry, error) {
	log := logger.ForComponent(ctx, s.logger, entryStoreComponent)

	where, args := buildEntryWhere(filter)
	query := `SELECT ` + entryColumns + ` FROM financial_entries` + where + ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to search entries", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	entries := []*domain.FinancialEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Error("failed to scan entry row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating entry rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("entries searched", slog.Int("count", len(entries)))
	return entries, nil
}

// SumByType implements store.EntryStore.SumByType.
func (s *PostgresEntryStore) SumByType(
	ctx context.Context,
	userID uuid.UUID,
	entryType domain.EntryType,
) (decimal.Decimal, error) {
	log := logger.ForComponent(ctx, s.logger, entryStoreComponent)

	query := `
		SELECT COALESCE(SUM(value), 0)
		FROM financial_entries
		WHERE user_id = $1 AND type = $2
	`
	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, userID, string(entryType)).Scan(&total); err != nil {
		log.Error("failed to sum entries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("type", string(entryType)))
		return decimal.Zero, MapError(err)
	}
	return total, nil
}

// buildEntryWhere renders the filter as a WHERE clause with positional
// parameters. It mirrors store.EntryFilter.Matches.
func buildEntryWhere(filter store.EntryFilter) (string, []any) {
	if filter.IsEmpty() {
		return "", nil
	}

	var conds []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Description != nil {
		add("description", *filter.Description)
	}
	if filter.Month != nil {
		add("month", *filter.Month)
	}
	if filter.Year != nil {
		add("year", *filter.Year)
	}
	if filter.UserID != nil {
		add("user_id", *filter.UserID)
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.FinancialEntry, error) {
	var entry domain.FinancialEntry
	var entryType, status string

	err := row.Scan(
		&entry.ID,
		&entry.Description,
		&entry.Month,
		&entry.Year,
		&entry.Value,
		&entry.UserID,
		&entryType,
		&status,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Type = domain.EntryType(entryType)
	entry.Status = domain.EntryStatus(status)
	return &entry, nil
}
