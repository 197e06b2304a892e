package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/platform/logger"
	"github.com/phrazzld/finances-api/internal/store"
	"github.com/shopspring/decimal"
)

const entryServiceComponent = "entry_service"

// EntryService defines the operations on financial entries.
type EntryService interface {
	// Create validates entry and persists it. Status defaults to PENDING.
	// Nothing is stored when validation fails.
	Create(ctx context.Context, entry *domain.FinancialEntry) (*domain.FinancialEntry, error)

	// Update validates and persists changes to a saved entry.
	// An entry without an ID yields *domain.InvariantViolation.
	Update(ctx context.Context, entry *domain.FinancialEntry) (*domain.FinancialEntry, error)

	// Delete removes a saved entry.
	// An entry without an ID yields *domain.InvariantViolation.
	Delete(ctx context.Context, entry *domain.FinancialEntry) error

	// FindByID looks an entry up. found is false when no entry has id.
	FindByID(ctx context.Context, id uuid.UUID) (entry *domain.FinancialEntry, found bool, err error)

	// Search returns the entries matching every criterion set on filter.
	Search(ctx context.Context, filter store.EntryFilter) ([]*domain.FinancialEntry, error)

	// Balance is the sum of the user's INCOME entries minus the sum of
	// their EXPENSE entries.
	Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)

	// ChangeStatus sets entry's status and saves it through Update.
	ChangeStatus(
		ctx context.Context,
		entry *domain.FinancialEntry,
		status domain.EntryStatus,
	) (*domain.FinancialEntry, error)
}

type entryServiceImpl struct {
	entries store.EntryStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewEntryService creates a new EntryService.
// It returns an error if the entry store is nil.
func NewEntryService(entries store.EntryStore, logger *slog.Logger) (EntryService, error) {
	if entries == nil {
		return nil, domain.NewValidationError("entries", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &entryServiceImpl{
		entries: entries,
		logger:  logger.With(slog.String("component", entryServiceComponent)),
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create implements EntryService.Create.
func (s *entryServiceImpl) Create(
	ctx context.Context,
	entry *domain.FinancialEntry,
) (*domain.FinancialEntry, error) {
	log := logger.ForComponent(ctx, s.logger, entryServiceComponent)

	if err := entry.Validate(); err != nil {
		log.Debug("entry rejected on create", slog.String("reason", err.Error()))
		return nil, err
	}

	if entry.Status == "" {
		entry.Status = domain.EntryStatusPending
	}
	entry.CreatedAt = s.now()

	if err := s.entries.Create(ctx, entry); err != nil {
		log.Error("failed to save entry",
			slog.String("error", err.Error()),
			slog.String("user_id", entry.UserID.String()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	return entry, nil
}

// Update implements EntryService.Update.
func (s *entryServiceImpl) Update(
	ctx context.Context,
	entry *domain.FinancialEntry,
) (*domain.FinancialEntry, error) {
	log := logger.ForComponent(ctx, s.logger, entryServiceComponent)

	if !entry.IsSaved() {
		err := domain.NewInvariantViolation("update entry", "entry has no ID")
		log.Error("update called with an unsaved entry", slog.String("error", err.Error()))
		return nil, err
	}

	if err := entry.Validate(); err != nil {
		log.Debug("entry rejected on update",
			slog.String("entry_id", entry.ID.String()),
			slog.String("reason", err.Error()))
		return nil, err
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to update entry",
				slog.String("error", err.Error()),
				slog.String("entry_id", entry.ID.String()))
		}
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	return entry, nil
}

// Delete implements EntryService.Delete.
func (s *entryServiceImpl) Delete(ctx context.Context, entry *domain.FinancialEntry) error {
	log := logger.ForComponent(ctx, s.logger, entryServiceComponent)

	if !entry.IsSaved() {
		err := domain.NewInvariantViolation("delete entry", "entry has no ID")
		log.Error("delete called with an unsaved entry", slog.String("error", err.Error()))
		return err
	}

	if err := s.entries.Delete(ctx, entry.ID); err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete entry",
				slog.String("error", err.Error()),
				slog.String("entry_id", entry.ID.String()))
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	log.Info("entry deleted", slog.String("entry_id", entry.ID.String()))
	return nil
}

// FindByID implements EntryService.FindByID.
func (s *entryServiceImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.FinancialEntry, bool, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, false, nil
		}
		logger.ForComponent(ctx, s.logger, entryServiceComponent).Error("failed to retrieve entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return nil, false, fmt.Errorf("failed to retrieve entry: %w", err)
	}
	return entry, true, nil
}

// Search implements EntryService.Search.
func (s *entryServiceImpl) Search(ctx context.Context, filter store.EntryFilter) ([]*domain.FinancialEntry, error) {
	entries, err := s.entries.Search(ctx, filter)
	if err != nil {
		logger.ForComponent(ctx, s.logger, entryServiceComponent).Error("failed to search entries",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	return entries, nil
}

// Balance implements EntryService.Balance.
func (s *entryServiceImpl) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	income, err := s.entries.SumByType(ctx, userID, domain.EntryTypeIncome)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum income: %w", err)
	}

	expense, err := s.entries.SumByType(ctx, userID, domain.EntryTypeExpense)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return income.Sub(expense), nil
}

// ChangeStatus implements EntryService.ChangeStatus.
// Any status may follow any other; status itself is not checked here.
func (s *entryServiceImpl) ChangeStatus(
	ctx context.Context,
	entry *domain.FinancialEntry,
	status domain.EntryStatus,
) (*domain.FinancialEntry, error) {
	entry.Status = status
	return s.Update(ctx, entry)
}
