package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// EntryStore is a mock of store.EntryStore for use with testify/mock.
type EntryStore struct {
	mock.Mock
}

var _ store.EntryStore = (*EntryStore)(nil)

// Create is a mock implementation of store.EntryStore.Create
func (m *EntryStore) Create(ctx context.Context, entry *domain.FinancialEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Update is a mock implementation of store.EntryStore.Update
func (m *EntryStore) Update(ctx context.Context, entry *domain.FinancialEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Delete is a mock implementation of store.EntryStore.Delete
func (m *EntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GetByID is a mock implementation of store.EntryStore.GetByID
func (m *EntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FinancialEntry, error) {
	args := m.Called(ctx, id)
	if entry, ok := args.Get(0).(*domain.FinancialEntry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

// Search is a mock implementation of store.EntryStore.Search
func (m *EntryStore) Search(ctx context.Context, filter store.EntryFilter) ([]*domain.FinancialEntry, error) {
	args := m.Called(ctx, filter)
	if entries, ok := args.Get(0).([]*domain.FinancialEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// SumByType is a mock implementation of store.EntryStore.SumByType
func (m *EntryStore) SumByType(
	ctx context.Context,
	userID uuid.UUID,
	entryType domain.EntryType,
) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, entryType)
	if total, ok := args.Get(0).(decimal.Decimal); ok {
		return total, args.Error(1)
	}
	return decimal.Zero, args.Error(1)
}
