package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/finances-api/internal/api/shared"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/service"
	"github.com/phrazzld/finances-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		defaultMsg string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "entry validation",
			err:        domain.NewValidationError("month", domain.MsgInvalidMonth, nil),
			wantStatus: http.StatusBadRequest,
			wantMsg:    domain.MsgInvalidMonth,
		},
		{
			name:       "email in use",
			err:        fmt.Errorf("register: %w", service.ErrEmailInUse),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "email already in use",
		},
		{
			name:       "duplicate email from store",
			err:        store.ErrEmailExists,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "email already in use",
		},
		{
			name:       "authentication",
			err:        service.NewAuthError(service.MsgInvalidPassword),
			wantStatus: http.StatusBadRequest,
			wantMsg:    service.MsgInvalidPassword,
		},
		{
			name:       "invalid entity",
			err:        store.NewStoreError("entry", "create", "fk", store.ErrInvalidEntity),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid entity data",
		},
		{
			name:       "entry not found",
			err:        fmt.Errorf("failed to update entry: %w", store.ErrEntryNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    MsgEntryNotFound,
		},
		{
			name:       "invariant violation hides details",
			err:        domain.NewInvariantViolation("update entry", "entry has no ID"),
			defaultMsg: "failed to update entry",
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "failed to update entry",
		},
		{
			name:       "invariant violation without default",
			err:        domain.NewInvariantViolation("delete entry", "entry has no ID"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    MsgUnexpectedError,
		},
		{
			name:       "unexpected",
			err:        errors.New("pq: connection reset"),
			defaultMsg: "failed to get balance",
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "failed to get balance",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/entries", nil)

			HandleAPIError(w, r, tc.err, tc.defaultMsg)

			assert.Equal(t, tc.wantStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMsg, body["error"])
		})
	}
}

func TestMapErrorToStatusCodeNil(t *testing.T) {
	assert.Equal(t, http.StatusOK, MapErrorToStatusCode(nil))
	assert.Equal(t, MsgUnexpectedError, GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(&RegisterUserRequest{Name: "Ana", Email: "not-an-email", Password: "x"})
	assert.Equal(t, "invalid email: invalid email format", SanitizeValidationError(err))

	assert.Equal(t, "validation failed", SanitizeValidationError(errors.New("other")))
}
