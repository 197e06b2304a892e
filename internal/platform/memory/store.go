package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/platform/logger"
	"github.com/phrazzld/finances-api/internal/store"
	"github.com/shopspring/decimal"
)

const memoryStoreComponent = "memory_store"

// DB holds users and entries in maps guarded by a single lock.
type DB struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]domain.User
	entries    map[uuid.UUID]domain.FinancialEntry
	entryOrder []uuid.UUID

	// txMu serializes InTx units of work.
	txMu sync.Mutex

	logger *slog.Logger
	now    func() time.Time
}

// NewDB creates an empty in-memory database.
// If logger is nil, a default logger will be used.
func NewDB(logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.Default()
	}
	return &DB{
		users:   make(map[uuid.UUID]domain.User),
		entries: make(map[uuid.UUID]domain.FinancialEntry),
		logger:  logger.With(slog.String("component", memoryStoreComponent)),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Users returns the UserStore view of db.
func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// Entries returns the EntryStore view of db.
func (db *DB) Entries() *EntryStore { return &EntryStore{db: db} }

var _ store.Transactor = (*DB)(nil)

// InTx implements store.Transactor. Units of work run one at a time, which
// makes check-then-write sequences atomic with respect to each other.
// Writes made before fn fails are not undone.
func (db *DB) InTx(ctx context.Context, fn func(ctx context.Context, s store.Stores) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	err := fn(ctx, store.Stores{Users: db.Users(), Entries: db.Entries()})
	if err != nil {
		logger.ForComponent(ctx, db.logger, memoryStoreComponent).Debug("unit of work failed",
			slog.String("error", err.Error()))
	}
	return err
}

// UserStore implements store.UserStore on a DB.
type UserStore struct {
	db *DB
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	user.ID = uuid.New()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.db.now()
	}
	s.db.users[user.ID] = *user

	logger.ForComponent(ctx, s.db.logger, memoryStoreComponent).Info("user created successfully",
		slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	user, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, user := range s.db.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// ExistsByEmail implements store.UserStore.ExistsByEmail.
func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if store.IsNotFoundError(err) {
		return false, nil
	}
	return err == nil, err
}

// EntryStore implements store.EntryStore on a DB.
type EntryStore struct {
	db *DB
}

var _ store.EntryStore = (*EntryStore)(nil)

// Create implements store.EntryStore.Create.
func (s *EntryStore) Create(ctx context.Context, entry *domain.FinancialEntry) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[entry.UserID]; !ok {
		return store.NewStoreError("entry", "create", "user with ID "+entry.UserID.String()+" not found",
			store.ErrInvalidEntity)
	}

	entry.ID = uuid.New()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.db.now()
	}
	s.db.entries[entry.ID] = *entry
	s.db.entryOrder = append(s.db.entryOrder, entry.ID)

	logger.ForComponent(ctx, s.db.logger, memoryStoreComponent).Info("entry created successfully",
		slog.String("entry_id", entry.ID.String()),
		slog.String("user_id", entry.UserID.String()))
	return nil
}

// Update implements store.EntryStore.Update.
func (s *EntryStore) Update(_ context.Context, entry *domain.FinancialEntry) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	current, ok := s.db.entries[entry.ID]
	if !ok {
		return store.ErrEntryNotFound
	}
	if _, ok := s.db.users[entry.UserID]; !ok {
		return store.NewStoreError("entry", "update", "user with ID "+entry.UserID.String()+" not found",
			store.ErrInvalidEntity)
	}

	updated := *entry
	updated.CreatedAt = current.CreatedAt
	s.db.entries[entry.ID] = updated
	return nil
}

// Delete implements store.EntryStore.Delete.
func (s *EntryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.entries[id]; !ok {
		return store.ErrEntryNotFound
	}
	delete(s.db.entries, id)
	for i, existing := range s.db.entryOrder {
		if existing == id {
			s.db.entryOrder = append(s.db.entryOrder[:i], s.db.entryOrder[i+1:]...)
			break
		}
	}
	return nil
}

// GetByID implements store.EntryStore.GetByID.
func (s *EntryStore) GetByID(_ context.Context, id uuid.UUID) (*domain.FinancialEntry, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	entry, ok := s.db.entries[id]
	if !ok {
		return nil, store.ErrEntryNotFound
	}
	return &entry, nil
}

// Search implements store.EntryStore.Search in insertion order.
func (s *EntryStore) Search(_ context.Context, filter store.EntryFilter) ([]*domain.FinancialEntry, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	result := []*domain.FinancialEntry{}
	for _, id := range s.db.entryOrder {
		entry := s.db.entries[id]
		if filter.Matches(&entry) {
			result = append(result, &entry)
		}
	}
	return result, nil
}

// SumByType implements store.EntryStore.SumByType.
func (s *EntryStore) SumByType(
	_ context.Context,
	userID uuid.UUID,
	entryType domain.EntryType,
) (decimal.Decimal, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	total := decimal.Zero
	for _, entry := range s.db.entries {
		if entry.UserID == userID && entry.Type == entryType {
			total = total.Add(entry.Value)
		}
	}
	return total, nil
}
