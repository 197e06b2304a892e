package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/mocks"
	"github.com/phrazzld/finances-api/internal/service"
	"github.com/phrazzld/finances-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validEntry() *domain.FinancialEntry {
	return &domain.FinancialEntry{
		Description: "Salary",
		Month:       3,
		Year:        2024,
		Value:       decimal.NewFromInt(100),
		UserID:      uuid.New(),
		Type:        domain.EntryTypeIncome,
	}
}

func savedEntry() *domain.FinancialEntry {
	e := validEntry()
	e.ID = uuid.New()
	e.Status = domain.EntryStatusPending
	return e
}

func newEntryService(t *testing.T) (service.EntryService, *mocks.EntryStore) {
	t.Helper()
	entries := new(mocks.EntryStore)
	svc, err := service.NewEntryService(entries, nil)
	require.NoError(t, err)
	return svc, entries
}

func TestNewEntryService_NilStore(t *testing.T) {
	svc, err := service.NewEntryService(nil, nil)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEntryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores valid entry with defaults", func(t *testing.T) {
		svc, entries := newEntryService(t)
		assignedID := uuid.New()

		entries.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.FinancialEntry) bool {
			return e.Status == domain.EntryStatusPending && !e.CreatedAt.IsZero()
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.FinancialEntry).ID = assignedID
		}).Return(nil).Once()

		created, err := svc.Create(ctx, validEntry())

		require.NoError(t, err)
		assert.Equal(t, assignedID, created.ID)
		assert.Equal(t, domain.EntryStatusPending, created.Status)
		entries.AssertExpectations(t)
	})

	t.Run("keeps explicit status", func(t *testing.T) {
		svc, entries := newEntryService(t)
		entry := validEntry()
		entry.Status = domain.EntryStatusSettled

		entries.On("Create", mock.Anything, entry).Return(nil).Once()

		created, err := svc.Create(ctx, entry)

		require.NoError(t, err)
		assert.Equal(t, domain.EntryStatusSettled, created.Status)
		entries.AssertExpectations(t)
	})

	invalid := []struct {
		name    string
		mutate  func(e *domain.FinancialEntry)
		message string
	}{
		{"blank description", func(e *domain.FinancialEntry) { e.Description = "  " }, domain.MsgInvalidDescription},
		{"month 13", func(e *domain.FinancialEntry) { e.Month = 13 }, domain.MsgInvalidMonth},
		{"three digit year", func(e *domain.FinancialEntry) { e.Year = 999 }, domain.MsgInvalidYear},
		{"no user", func(e *domain.FinancialEntry) { e.UserID = uuid.Nil }, domain.MsgUserRequired},
		{"zero value", func(e *domain.FinancialEntry) { e.Value = decimal.Zero }, domain.MsgInvalidValue},
		{"no type", func(e *domain.FinancialEntry) { e.Type = "" }, domain.MsgEntryTypeRequired},
	}
	for _, tc := range invalid {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			svc, entries := newEntryService(t)
			entry := validEntry()
			tc.mutate(entry)

			created, err := svc.Create(ctx, entry)

			assert.Nil(t, created)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tc.message, err.Error())
			entries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		svc, entries := newEntryService(t)
		dbErr := errors.New("connection reset")
		entries.On("Create", mock.Anything, mock.Anything).Return(dbErr).Once()

		created, err := svc.Create(ctx, validEntry())

		assert.Nil(t, created)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestEntryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("unsaved entry violates precondition", func(t *testing.T) {
		svc, entries := newEntryService(t)

		updated, err := svc.Update(ctx, validEntry())

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
		var iv *domain.InvariantViolation
		assert.ErrorAs(t, err, &iv)
		entries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("invalid entry is not stored", func(t *testing.T) {
		svc, entries := newEntryService(t)
		entry := savedEntry()
		entry.Month = 0

		_, err := svc.Update(ctx, entry)

		assert.ErrorIs(t, err, domain.ErrValidation)
		entries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("saves valid entry", func(t *testing.T) {
		svc, entries := newEntryService(t)
		entry := savedEntry()
		entries.On("Update", mock.Anything, entry).Return(nil).Once()

		updated, err := svc.Update(ctx, entry)

		require.NoError(t, err)
		assert.Same(t, entry, updated)
		entries.AssertExpectations(t)
	})

	t.Run("missing entry", func(t *testing.T) {
		svc, entries := newEntryService(t)
		entries.On("Update", mock.Anything, mock.Anything).Return(store.ErrEntryNotFound).Once()

		_, err := svc.Update(ctx, savedEntry())

		assert.True(t, store.IsNotFoundError(err))
	})
}

func TestEntryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("unsaved entry violates precondition", func(t *testing.T) {
		svc, entries := newEntryService(t)

		err := svc.Delete(ctx, validEntry())

		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
		entries.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes by ID", func(t *testing.T) {
		svc, entries := newEntryService(t)
		entry := savedEntry()
		entries.On("Delete", mock.Anything, entry.ID).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, entry))
		entries.AssertExpectations(t)
	})
}

func TestEntryService_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, entries := newEntryService(t)
		entry := savedEntry()
		entries.On("GetByID", mock.Anything, entry.ID).Return(entry, nil)

		got, found, err := svc.FindByID(ctx, entry.ID)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, entry, got)
	})

	t.Run("absent is not an error", func(t *testing.T) {
		svc, entries := newEntryService(t)
		id := uuid.New()
		entries.On("GetByID", mock.Anything, id).Return(nil, store.ErrEntryNotFound)

		got, found, err := svc.FindByID(ctx, id)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, got)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, entries := newEntryService(t)
		dbErr := errors.New("connection reset")
		entries.On("GetByID", mock.Anything, mock.Anything).Return(nil, dbErr)

		_, found, err := svc.FindByID(ctx, uuid.New())

		assert.False(t, found)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestEntryService_Search(t *testing.T) {
	svc, entries := newEntryService(t)
	userID := uuid.New()
	month := 3
	filter := store.EntryFilter{Month: &month, UserID: &userID}
	first, second := savedEntry(), savedEntry()
	entries.On("Search", mock.Anything, filter).Return([]*domain.FinancialEntry{first, second}, nil)

	found, err := svc.Search(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, []*domain.FinancialEntry{first, second}, found)
	entries.AssertExpectations(t)
}

func TestEntryService_Balance(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("income minus expense", func(t *testing.T) {
		svc, entries := newEntryService(t)
		entries.On("SumByType", mock.Anything, userID, domain.EntryTypeIncome).Return(decimal.NewFromInt(100), nil)
		entries.On("SumByType", mock.Anything, userID, domain.EntryTypeExpense).Return(decimal.NewFromInt(30), nil)

		balance, err := svc.Balance(ctx, userID)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(70).Equal(balance), "got %s", balance)
	})

	t.Run("no entries", func(t *testing.T) {
		svc, entries := newEntryService(t)
		entries.On("SumByType", mock.Anything, userID, mock.Anything).Return(decimal.Zero, nil)

		balance, err := svc.Balance(ctx, userID)

		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("store failure", func(t *testing.T) {
		svc, entries := newEntryService(t)
		dbErr := errors.New("connection reset")
		entries.On("SumByType", mock.Anything, userID, domain.EntryTypeIncome).Return(decimal.Zero, dbErr)

		_, err := svc.Balance(ctx, userID)

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestEntryService_ChangeStatus(t *testing.T) {
	svc, entries := newEntryService(t)
	entry := savedEntry()
	entries.On("Update", mock.Anything, mock.MatchedBy(func(e *domain.FinancialEntry) bool {
		return e.ID == entry.ID && e.Status == domain.EntryStatusSettled
	})).Return(nil).Once()

	updated, err := svc.ChangeStatus(context.Background(), entry, domain.EntryStatusSettled)

	require.NoError(t, err)
	assert.Equal(t, domain.EntryStatusSettled, updated.Status)
	entries.AssertNumberOfCalls(t, "Update", 1)

	t.Run("unsaved entry", func(t *testing.T) {
		svc, _ := newEntryService(t)
		_, err := svc.ChangeStatus(context.Background(), validEntry(), domain.EntryStatusCancelled)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	})
}
