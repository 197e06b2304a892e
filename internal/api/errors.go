package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/finances-api/internal/api/shared"
	"github.com/phrazzld/finances-api/internal/domain"
	"github.com/phrazzld/finances-api/internal/service"
	"github.com/phrazzld/finances-api/internal/store"
)

// Messages sent for conditions handlers detect themselves.
const (
	MsgEntryNotFound       = "entry not found"
	MsgUserNotFoundForID   = "user not found for the given id"
	MsgSearchUserRequired  = "user is required to search entries"
	MsgSearchUserNotFound  = "could not search entries: user not found"
	MsgUnexpectedError     = "an unexpected error occurred"
	MsgMalformedRequest    = "malformed request body"
	msgValidationFallback  = "validation failed"
	msgInvalidEntityFields = "invalid entity data"
)

// ErrMalformedRequest wraps JSON decoding failures.
var ErrMalformedRequest = errors.New("malformed request")

// MapErrorToStatusCode maps an error returned by a service onto an HTTP
// status. Business-rule failures are 400, lookups that found nothing are 404
// and anything unrecognized, including broken preconditions, is 500.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, domain.ErrInvariantViolation):
		return http.StatusInternalServerError

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.As(err, &verrs),
		errors.Is(err, ErrMalformedRequest),
		errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrAuthentication),
		errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrEntryNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message that is safe to show to a client.
// Messages of business-rule errors are passed through; everything else is
// replaced by a fixed text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpectedError
	}

	var (
		verr    *domain.ValidationError
		verrs   validator.ValidationErrors
		authErr *service.AuthError
	)

	switch {
	case errors.Is(err, domain.ErrInvariantViolation):
		return MsgUnexpectedError

	case errors.As(err, &verr):
		return verr.Message

	case errors.As(err, &verrs):
		return SanitizeValidationError(err)

	case errors.As(err, &authErr):
		return authErr.Message

	case errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, store.ErrEmailExists):
		return service.ErrEmailInUse.Error()

	case errors.Is(err, ErrMalformedRequest):
		return MsgMalformedRequest

	case errors.Is(err, domain.ErrInvalidID):
		return "invalid ID"

	case errors.Is(err, domain.ErrValidation):
		return msgValidationFallback

	case errors.Is(err, store.ErrInvalidEntity):
		return msgInvalidEntityFields

	case errors.Is(err, store.ErrUserNotFound):
		return "user not found"

	case errors.Is(err, store.ErrEntryNotFound):
		return MsgEntryNotFound

	case errors.Is(err, store.ErrNotFound):
		return "not found"

	default:
		return MsgUnexpectedError
	}
}

// SanitizeValidationError turns validator struct-tag failures into a short
// message naming the first offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return msgValidationFallback
	}

	first := verrs[0]
	return fmt.Sprintf("invalid %s: %s", first.Field(), getValidationTagMessage(first.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid", "uuid4":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. defaultMsg, when set,
// replaces the generic text of a 500 response; client errors always carry
// their own safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if errors.Is(err, service.ErrAuthentication) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, strings.TrimSpace(message), err, opts...)
}
