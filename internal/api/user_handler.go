package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/finances-api/internal/api/shared"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/platform/logger"
	"github.com/phrazzld/finances-api/internal/service"
)

const userHandlerComponent = "user_handler"

// UserHandler serves the /users routes.
type UserHandler struct {
	users   service.UserService
	entries service.EntryService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	users service.UserService,
	entries service.EntryService,
	logger *slog.Logger,
) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		users:   users,
		entries: entries,
		logger:  logger.With(slog.String("component", userHandlerComponent)),
	}
}

// Register handles POST /users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.ForComponent(r.Context(), h.logger, userHandlerComponent)

	var req RegisterUserRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.Register(r.Context(), domain.NewUser(req.Name, req.Email, req.Password))
	if err != nil {
		HandleAPIError(w, r, err, "failed to register user")
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// Authenticate handles POST /users/authenticate. Failures are 400 with the
// reason.
func (h *UserHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req AuthenticateRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "failed to authenticate")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// GetBalance handles GET /users/{id}/balance.
func (h *UserHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	_, found, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "failed to get balance")
		return
	}
	if !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "user not found")
		return
	}

	balance, err := h.entries.Balance(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "failed to get balance")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BalanceResponse{
		UserID:  id,
		Balance: balance.StringFixed(2),
	})
}
