package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/store"
)

// SQLSTATE codes for the integrity violations the schema can raise.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// constraintRule names the entry field a schema constraint guards and the
// validation message clients see when it fails.
type constraintRule struct {
	field   string
	message string
}

// entryConstraints mirrors FinancialEntry.Validate for rows that reach the
// database without passing through it.
var entryConstraints = map[string]constraintRule{
	"financial_entries_month_check":  {"month", domain.MsgInvalidMonth},
	"financial_entries_year_check":   {"year", domain.MsgInvalidYear},
	"financial_entries_value_check":  {"value", domain.MsgInvalidValue},
	"financial_entries_type_check":   {"type", "invalid entry type"},
	"financial_entries_status_check": {"status", "invalid entry status"},
}

// MapError translates a driver error into the store's error vocabulary.
// Missing rows become store.ErrNotFound, a duplicate email becomes
// store.ErrEmailExists, and integrity violations become store.ErrInvalidEntity.
// A failed entry check constraint is reported as a *domain.ValidationError
// wrapping store.ErrInvalidEntity. Anything else is returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		if pgErr.ConstraintName == "users_email_key" {
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)

	case checkViolationCode:
		invalid := fmt.Errorf("%w: %s violated: %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
		if rule, ok := entryConstraints[pgErr.ConstraintName]; ok {
			return domain.NewValidationError(rule.field, rule.message, invalid)
		}
		return invalid

	case foreignKeyViolationCode:
		return fmt.Errorf("%w: %s references a missing row: %v",
			store.ErrInvalidEntity, pgErr.ConstraintName, err)

	case notNullViolationCode:
		return fmt.Errorf("%w: %s.%s is required: %v",
			store.ErrInvalidEntity, pgErr.TableName, pgErr.ColumnName, err)
	}

	return err
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolationCode)
}

// IsForeignKeyViolation reports whether err carries SQLSTATE 23503.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolationCode)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE touched no rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}
