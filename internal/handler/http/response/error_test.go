package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/regularization"
	"github.com/cmlabs-hris/ops-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleError_Status(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("week_start_date", "must be a Monday")

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", verrs, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"transition", fmt.Errorf("save: %w", approval.ErrLocked), http.StatusBadRequest, "INVALID_TRANSITION"},
		{"conflict", regularization.ErrDuplicatePending, http.StatusBadRequest, "CONFLICT"},
		{"not found", regularization.ErrRequestNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"token", jwt.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("entries[0].hours", "must be greater than 0")

	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("save week: %w", verrs))

	resp := decode(t, rec)
	assert.Equal(t, "must be greater than 0", resp.Error.Details["entries[0].hours"])
}

func TestHandleError_DebugChain(t *testing.T) {
	wrapped := fmt.Errorf("submit week: %w", timesheet.ErrNothingToSubmit)

	SetDebug(false)
	rec := httptest.NewRecorder()
	HandleError(rec, wrapped)
	assert.Empty(t, decode(t, rec).Debug)

	SetDebug(true)
	t.Cleanup(func() { SetDebug(false) })
	rec = httptest.NewRecorder()
	HandleError(rec, wrapped)
	assert.Equal(t, []string{wrapped.Error(), timesheet.ErrNothingToSubmit.Error()}, decode(t, rec).Debug)
}
