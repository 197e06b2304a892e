package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/shopspring/decimal"
)

// EntryStore defines the interface for financial entry persistence.
type EntryStore interface {
	// Create saves a new entry and assigns entry.ID.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, entry *domain.FinancialEntry) error

	// Update overwrites the mutable fields of an existing entry.
	// Returns ErrEntryNotFound if no entry has entry.ID.
	Update(ctx context.Context, entry *domain.FinancialEntry) error

	// Delete removes the entry with the given ID.
	// Returns ErrEntryNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetByID retrieves an entry by ID.
	// Returns ErrEntryNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FinancialEntry, error)

	// Search returns every entry matching filter, oldest first.
	// An empty result is an empty slice, never nil.
	Search(ctx context.Context, filter EntryFilter) ([]*domain.FinancialEntry, error)

	// SumByType totals the value of a user's entries of one type.
	// Returns zero when the user has no such entries.
	SumByType(ctx context.Context, userID uuid.UUID, entryType domain.EntryType) (decimal.Decimal, error)
}

// EntryFilter selects entries by example. Every non-nil field must match
// exactly; nil fields are ignored. The zero filter matches everything.
type EntryFilter struct {
	Description *string
	Month       *int
	Year        *int
	UserID      *uuid.UUID
}

// Matches reports whether e satisfies every criterion set on f.
func (f EntryFilter) Matches(e *domain.FinancialEntry) bool {
	if e == nil {
		return false
	}
	for _, match := range f.predicates() {
		if !match(e) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no criterion is set.
func (f EntryFilter) IsEmpty() bool {
	return len(f.predicates()) == 0
}

type entryPredicate func(*domain.FinancialEntry) bool

func (f EntryFilter) predicates() []entryPredicate {
	var preds []entryPredicate
	if f.Description != nil {
		want := *f.Description
		preds = append(preds, func(e *domain.FinancialEntry) bool { return e.Description == want })
	}
	if f.Month != nil {
		want := *f.Month
		preds = append(preds, func(e *domain.FinancialEntry) bool { return e.Month == want })
	}
	if f.Year != nil {
		want := *f.Year
		preds = append(preds, func(e *domain.FinancialEntry) bool { return e.Year == want })
	}
	if f.UserID != nil {
		want := *f.UserID
		preds = append(preds, func(e *domain.FinancialEntry) bool { return e.UserID == want })
	}
	return preds
}
