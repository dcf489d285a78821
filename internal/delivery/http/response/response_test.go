package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()

	return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, &Pagination{Page: 0, Size: 10, Total: 21, TotalPages: 3}, NewPagination(0, 10, 21))
	assert.Equal(t, int64(0), NewPagination(0, 10, 0).TotalPages)
}

func TestError_HidesDetailsForServerErrors(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "", "stack trace"))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), body.Message)
	require.NotNil(t, body.Error)
	assert.Empty(t, body.Error.Details)
	assert.NotZero(t, body.Timestamp)
}

func TestError_KeepsDetailsForClientErrors(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", "email"))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "email", body.Error.Details)
}

func TestSuccess_DefaultMessage(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Success(c, http.StatusOK, map[string]int{"n": 1}, ""))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Success", body.Message)
	assert.Nil(t, body.Pagination)
}
