package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/mocks"
	"github.com/phrazzld/finances-api/internal/service"
	"github.com/phrazzld/finances-api/internal/service/auth"
	"github.com/phrazzld/finances-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceFixture struct {
	svc        service.UserService
	users      *mocks.UserStore
	txUsers    *mocks.UserStore
	transactor *mocks.Transactor
}

func newUserServiceFixture(t *testing.T) userServiceFixture {
	t.Helper()
	users := new(mocks.UserStore)
	txUsers := new(mocks.UserStore)
	transactor := &mocks.Transactor{Stores: store.Stores{Users: txUsers, Entries: new(mocks.EntryStore)}}

	svc, err := service.NewUserService(users, transactor, auth.NewPlaintextVerifier(), nil)
	require.NoError(t, err)

	return userServiceFixture{svc: svc, users: users, txUsers: txUsers, transactor: transactor}
}

func TestNewUserService_NilDependencies(t *testing.T) {
	users := new(mocks.UserStore)
	transactor := &mocks.Transactor{}
	verifier := auth.NewPlaintextVerifier()

	_, err := service.NewUserService(nil, transactor, verifier, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.NewUserService(users, nil, verifier, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.NewUserService(users, transactor, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Password: "secret"}

	t.Run("unknown email", func(t *testing.T) {
		f := newUserServiceFixture(t)
		f.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, store.ErrUserNotFound)

		user, err := f.svc.Authenticate(ctx, "nobody@example.com", "secret")

		assert.Nil(t, user)
		var authErr *service.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, service.MsgEmailNotRegistered, authErr.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newUserServiceFixture(t)
		f.users.On("GetByEmail", mock.Anything, "ana@example.com").Return(stored, nil)

		user, err := f.svc.Authenticate(ctx, "ana@example.com", "guess")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, service.ErrAuthentication)
		assert.Equal(t, service.MsgInvalidPassword, err.Error())
	})

	t.Run("success", func(t *testing.T) {
		f := newUserServiceFixture(t)
		f.users.On("GetByEmail", mock.Anything, "ana@example.com").Return(stored, nil)

		user, err := f.svc.Authenticate(ctx, "ana@example.com", "secret")

		require.NoError(t, err)
		assert.Equal(t, stored, user)
	})

	t.Run("store failure is not an auth error", func(t *testing.T) {
		f := newUserServiceFixture(t)
		dbErr := errors.New("connection reset")
		f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, dbErr)

		_, err := f.svc.Authenticate(ctx, "ana@example.com", "secret")

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, service.ErrAuthentication)
	})

	t.Run("uses the configured verifier", func(t *testing.T) {
		users := new(mocks.UserStore)
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
		svc, err := service.NewUserService(users, &mocks.Transactor{}, verifier, nil)
		require.NoError(t, err)
		users.On("GetByEmail", mock.Anything, "ana@example.com").Return(stored, nil)

		_, err = svc.Authenticate(ctx, "ana@example.com", "anything")

		require.NoError(t, err)
		assert.Equal(t, 1, verifier.CompareCallCount)
		assert.Equal(t, "secret", verifier.CompareCalledWith.StoredPassword)
		assert.Equal(t, "anything", verifier.CompareCalledWith.Candidate)
	})
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("saves when email is free", func(t *testing.T) {
		f := newUserServiceFixture(t)
		user := domain.NewUser("Ana", "ana@example.com", "secret")
		assignedID := uuid.New()

		f.txUsers.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(false, nil).Once()
		f.txUsers.On("Create", mock.Anything, user).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = assignedID
		}).Return(nil).Once()

		registered, err := f.svc.Register(ctx, user)

		require.NoError(t, err)
		assert.Equal(t, assignedID, registered.ID)
		assert.Equal(t, 1, f.transactor.InTxCallCount)
		f.txUsers.AssertExpectations(t)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email never saves", func(t *testing.T) {
		f := newUserServiceFixture(t)
		f.txUsers.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(true, nil).Once()

		registered, err := f.svc.Register(ctx, domain.NewUser("Ana", "ana@example.com", "secret"))

		assert.Nil(t, registered)
		assert.ErrorIs(t, err, service.ErrEmailInUse)
		f.txUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique constraint race maps to email in use", func(t *testing.T) {
		f := newUserServiceFixture(t)
		f.txUsers.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil).Once()
		f.txUsers.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists).Once()

		_, err := f.svc.Register(ctx, domain.NewUser("Ana", "ana@example.com", "secret"))

		assert.Equal(t, service.ErrEmailInUse, err)
	})

	t.Run("transaction failure", func(t *testing.T) {
		f := newUserServiceFixture(t)
		beginErr := errors.New("failed to begin transaction")
		f.transactor.BeginErr = beginErr

		_, err := f.svc.Register(ctx, domain.NewUser("Ana", "ana@example.com", "secret"))

		assert.ErrorIs(t, err, beginErr)
		assert.NotErrorIs(t, err, service.ErrEmailInUse)
	})
}

func TestUserService_ValidateEmailAvailable(t *testing.T) {
	f := newUserServiceFixture(t)
	f.users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)
	f.users.On("ExistsByEmail", mock.Anything, "free@example.com").Return(false, nil)

	assert.ErrorIs(t, f.svc.ValidateEmailAvailable(context.Background(), "taken@example.com"), service.ErrEmailInUse)
	assert.NoError(t, f.svc.ValidateEmailAvailable(context.Background(), "free@example.com"))
}

func TestUserService_FindByID(t *testing.T) {
	f := newUserServiceFixture(t)
	known := &domain.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com"}
	unknown := uuid.New()
	f.users.On("GetByID", mock.Anything, known.ID).Return(known, nil)
	f.users.On("GetByID", mock.Anything, unknown).Return(nil, store.ErrUserNotFound)

	user, found, err := f.svc.FindByID(context.Background(), known.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, known, user)

	user, found, err = f.svc.FindByID(context.Background(), unknown)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, user)
}
