package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the authentication domain. Handlers map these to HTTP
// responses; messages stay generic so clients cannot enumerate accounts.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenMissing       = errors.New("missing authorization token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session expired")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrNotFound           = errors.New("not found")
)

// RespondError maps domain errors to HTTP responses. Unknown errors become a
// generic 500; their detail belongs in the log, never in the body.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrTokenMissing):
		Error(w, http.StatusUnauthorized, "Missing authorization token")
	case errors.Is(err, ErrTokenExpired):
		Error(w, http.StatusUnauthorized, "Token expired")
	case errors.Is(err, ErrTokenInvalid):
		Error(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, ErrSessionExpired):
		Error(w, http.StatusUnauthorized, "Session expired")
	case errors.Is(err, ErrForbidden):
		Error(w, http.StatusForbidden, "Insufficient permissions")
	case errors.Is(err, ErrNotFound):
		Error(w, http.StatusNotFound, "Not found")
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
