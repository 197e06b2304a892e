package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType tells whether an entry adds to or subtracts from the balance.
type EntryType string

// Possible entry types
const (
	EntryTypeIncome  EntryType = "INCOME"
	EntryTypeExpense EntryType = "EXPENSE"
)

// EntryStatus is the lifecycle tag of an entry. Any status may be changed to
// any other status at any time.
type EntryStatus string

// Possible entry status values
const (
	EntryStatusPending   EntryStatus = "PENDING"
	EntryStatusSettled   EntryStatus = "SETTLED"
	EntryStatusCancelled EntryStatus = "CANCELLED"
)

// Validation messages returned by FinancialEntry.Validate, in check order.
const (
	MsgInvalidDescription = "invalid description"
	MsgInvalidMonth       = "invalid month"
	MsgInvalidYear        = "invalid year"
	MsgUserRequired       = "user required"
	MsgInvalidValue       = "invalid value"
	MsgEntryTypeRequired  = "entry type required"
)

// ValueScale is the number of decimal places an entry value may carry.
const ValueScale = 2

// FinancialEntry is a single income or expense record owned by a user and
// filed under a month and year.
type FinancialEntry struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Value       decimal.Decimal `json:"value"`
	UserID      uuid.UUID       `json:"user_id"`
	Type        EntryType       `json:"type"`
	Status      EntryStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IsSaved reports whether the store has assigned an ID to the entry.
func (e *FinancialEntry) IsSaved() bool {
	return e != nil && e.ID != uuid.Nil
}

// Validate checks the entry's fields and returns a *ValidationError for the
// first rule that fails. The order is fixed: description, month, year, user,
// value, type. A value must be positive and carry at most ValueScale
// decimal places.
func (e *FinancialEntry) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return NewValidationError("description", MsgInvalidDescription, nil)
	}

	if e.Month < 1 || e.Month > 12 {
		return NewValidationError("month", MsgInvalidMonth, nil)
	}

	if e.Year < 1000 || e.Year > 9999 {
		return NewValidationError("year", MsgInvalidYear, nil)
	}

	if e.UserID == uuid.Nil {
		return NewValidationError("user", MsgUserRequired, nil)
	}

	if !e.Value.IsPositive() || !e.Value.Equal(e.Value.Round(ValueScale)) {
		return NewValidationError("value", MsgInvalidValue, nil)
	}

	if e.Type == "" {
		return NewValidationError("type", MsgEntryTypeRequired, nil)
	}

	return nil
}

// ParseEntryType converts s into an EntryType. Matching is case-insensitive.
func ParseEntryType(s string) (EntryType, error) {
	switch t := EntryType(strings.ToUpper(strings.TrimSpace(s))); t {
	case EntryTypeIncome, EntryTypeExpense:
		return t, nil
	default:
		return "", NewValidationError("type", fmt.Sprintf("invalid entry type %q", s), nil)
	}
}

// ParseEntryStatus converts s into an EntryStatus. Matching is case-insensitive.
func ParseEntryStatus(s string) (EntryStatus, error) {
	switch st := EntryStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case EntryStatusPending, EntryStatusSettled, EntryStatusCancelled:
		return st, nil
	default:
		return "", NewValidationError("status", fmt.Sprintf("invalid entry status %q", s), nil)
	}
}
