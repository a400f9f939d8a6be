package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
)

// debug adds the wrapped error chain to error bodies. Off in production.
var debug bool

func SetDebug(enabled bool) {
	debug = enabled
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		writeError(w, http.StatusBadRequest, apperror.KindValidation.String(), "Validation failed", validationErrs.ToMap(), err)
		return
	}

	if errors.Is(err, jwt.ErrInvalidToken) {
		writeError(w, http.StatusUnauthorized, apperror.KindUnauthorized.String(), err.Error(), nil, err)
		return
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		writeError(w, StatusFor(appErr.Kind), appErr.Kind.String(), appErr.Message, nil, err)
		return
	}

	slog.Error("unexpected error", "error", err)
	writeError(w, http.StatusInternalServerError, apperror.KindUnexpected.String(), "An unexpected error occurred", nil, err)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindInvalidTransition, apperror.KindConflict:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string, err error) {
	resp := Response{
		Success: false,
		Message: message,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	if debug {
		resp.Debug = errorChain(err)
	}
	writeJSON(w, statusCode, resp)
}

func errorChain(err error) []string {
	var chain []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		chain = append(chain, e.Error())
	}
	return chain
}
