package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/platform/logger"
	"github.com/phrazzld/finances-api/internal/service/auth"
	"github.com/phrazzld/finances-api/internal/store"
)

const userServiceComponent = "user_service"

// UserService provides registration and authentication of users.
type UserService interface {
	// Authenticate returns the user owning email when password matches.
	// Fails with an *AuthError ("email not registered" or "invalid password").
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// Register persists a new user after checking the email is free.
	// Returns ErrEmailInUse when it is not; the check and the save form
	// one unit of work.
	Register(ctx context.Context, user *domain.User) (*domain.User, error)

	// ValidateEmailAvailable returns ErrEmailInUse if a user already has email.
	ValidateEmailAvailable(ctx context.Context, email string) error

	// FindByID looks a user up. found is false when no user has id.
	FindByID(ctx context.Context, id uuid.UUID) (user *domain.User, found bool, err error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users      store.UserStore
	transactor store.Transactor
	verifier   auth.PasswordVerifier
	logger     *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	users store.UserStore,
	transactor store.Transactor,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if transactor == nil {
		return nil, domain.NewValidationError("transactor", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		users:      users,
		transactor: transactor,
		verifier:   verifier,
		logger:     logger.With(slog.String("component", userServiceComponent)),
	}, nil
}

// Authenticate implements UserService.Authenticate.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.ForComponent(ctx, s.logger, userServiceComponent)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("authentication failed: email not registered")
			return nil, NewAuthError(MsgEmailNotRegistered)
		}
		log.Error("failed to look up user for authentication", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}

	if err := s.verifier.Compare(user.Password, password); err != nil {
		log.Debug("authentication failed: invalid password",
			slog.String("user_id", user.ID.String()))
		return nil, NewAuthError(MsgInvalidPassword)
	}

	log.Debug("user authenticated", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Register implements UserService.Register.
func (s *UserServiceImpl) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.ForComponent(ctx, s.logger, userServiceComponent)

	err := s.transactor.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		if err := checkEmailAvailable(ctx, st.Users, user.Email); err != nil {
			return err
		}
		return st.Users.Create(ctx, user)
	})
	if err != nil {
		// A concurrent registration can slip past the check; the unique
		// constraint then reports it as a duplicate.
		if errors.Is(err, ErrEmailInUse) || store.IsDuplicateError(err) {
			log.Debug("attempted to register an email already in use")
			return nil, ErrEmailInUse
		}
		log.Error("failed to register user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// ValidateEmailAvailable implements UserService.ValidateEmailAvailable.
func (s *UserServiceImpl) ValidateEmailAvailable(ctx context.Context, email string) error {
	return checkEmailAvailable(ctx, s.users, email)
}

// FindByID implements UserService.FindByID.
func (s *UserServiceImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, bool, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, false, nil
		}
		logger.ForComponent(ctx, s.logger, userServiceComponent).Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, false, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, true, nil
}

func checkEmailAvailable(ctx context.Context, users store.UserStore, email string) error {
	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email availability: %w", err)
	}
	if exists {
		return ErrEmailInUse
	}
	return nil
}
