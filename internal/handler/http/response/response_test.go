package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "invalid id", map[string]string{"id": "must be numeric"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
	assert.Equal(t, "must be numeric", resp.Error.Details["id"])

	rec = httptest.NewRecorder()
	Forbidden(rec, "nope")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "nope", decode(t, rec).Message)
}

func TestFile(t *testing.T) {
	rec := httptest.NewRecorder()
	File(rec, "attendance.xlsx", "application/octet-stream", []byte("PK"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="attendance.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", rec.Header().Get("Content-Length"))
	assert.Equal(t, "PK", rec.Body.String())
}
