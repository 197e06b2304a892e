package mocks

import (
	"context"

	"github.com/phrazzld/finances-api/internal/store"
)

// Transactor implements store.Transactor by calling fn directly with Stores.
type Transactor struct {
	// Stores is handed to every unit of work.
	Stores store.Stores

	// BeginErr, when set, is returned without running fn.
	BeginErr error

	// InTxCallCount tracks how many units of work were requested.
	InTxCallCount int
}

var _ store.Transactor = (*Transactor)(nil)

// InTx implements store.Transactor.
func (m *Transactor) InTx(ctx context.Context, fn func(ctx context.Context, s store.Stores) error) error {
	m.InTxCallCount++
	if m.BeginErr != nil {
		return m.BeginErr
	}
	return fn(ctx, m.Stores)
}
