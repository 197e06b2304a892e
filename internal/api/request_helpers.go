package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/finances-api/internal/api/shared"
	"github.com/phrazzld/finances-api/internal/domain"
)

// getPathUUID parses the chi path parameter paramName as a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return uuid.Nil, domain.NewValidationError(paramName, paramName+" is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "invalid "+paramName, domain.ErrInvalidID)
	}

	return id, nil
}

// decodeRequest decodes the JSON body into v and checks its struct tags.
func decodeRequest(r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	return shared.ValidateRequest(v)
}

// queryValue returns the first non-empty query parameter among names.
func queryValue(r *http.Request, names ...string) (string, bool) {
	q := r.URL.Query()
	for _, name := range names {
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			return v, true
		}
	}
	return "", false
}

// queryInt reads an optional integer query parameter. field names the
// criterion in the error message.
func queryInt(r *http.Request, field string, names ...string) (*int, error) {
	raw, ok := queryValue(r, names...)
	if !ok {
		return nil, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "invalid "+field, nil)
	}
	return &n, nil
}

// queryUUID reads an optional UUID query parameter.
func queryUUID(r *http.Request, field string, names ...string) (*uuid.UUID, error) {
	raw, ok := queryValue(r, names...)
	if !ok {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "invalid "+field, domain.ErrInvalidID)
	}
	return &id, nil
}
