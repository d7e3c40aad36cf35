package httpx

import (
	"errors"
	"net/http"

	"github.com/tradewind-erp/tradewind/internal/shared"
)

// RespondError maps domain errors to an HTTP failure envelope.
// NotFound maps to 404, validation and uniqueness conflicts to 400,
// auth failures to 401/403, anything unanticipated to 500 with a
// generic message so internals never leak to the caller.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrValidation):
		Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Fail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		Fail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		Fail(w, http.StatusForbidden, err.Error())
	default:
		Fail(w, http.StatusInternalServerError, "internal error")
	}
}
