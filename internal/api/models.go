package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/shopspring/decimal"
)

// EntryRequest is the body of POST /entries and PUT /entries/{id}.
// Type and status are parsed by the handler so unknown names are reported
// with a readable message. Content rules are left to the entry validator.
type EntryRequest struct {
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Value       decimal.Decimal `json:"value"`
	UserID      uuid.UUID       `json:"user_id"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
}

// StatusRequest is the body of PUT /entries/{id}/status.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RegisterUserRequest is the body of POST /users.
type RegisterUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthenticateRequest is the body of POST /users/authenticate. Blank fields
// are left to the user service, which answers with its credential messages.
type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EntryResponse is the JSON form of a financial entry. Value is a decimal
// string with two places.
type EntryResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	Value       string    `json:"value"`
	UserID      uuid.UUID `json:"user_id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserResponse is the JSON form of a user. The password is never included.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// BalanceResponse is the body of GET /users/{id}/balance.
type BalanceResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	Balance string    `json:"balance"`
}

func entryToResponse(e *domain.FinancialEntry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		Description: e.Description,
		Month:       e.Month,
		Year:        e.Year,
		Value:       e.Value.StringFixed(2),
		UserID:      e.UserID,
		Type:        string(e.Type),
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
	}
}

func entriesToResponse(entries []*domain.FinancialEntry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToResponse(e))
	}
	return out
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
