package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "telemart/pkg/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorMapsAppErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.NotFound("Order", nil), http.StatusNotFound, apperrors.CodeNotFound},
		{apperrors.Conflict("slug already exists"), http.StatusConflict, apperrors.CodeConflict},
		{apperrors.BadRequest("no items", nil), http.StatusBadRequest, apperrors.CodeBadRequest},
		{fmt.Errorf("wrapped: %w", apperrors.Unauthorized("no token", nil)), http.StatusUnauthorized, apperrors.CodeUnauthorized},
		{fmt.Errorf("plain failure"), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tc := range cases {
		c, rec := newContext()
		require.NoError(t, Error(c, tc.err))
		assert.Equal(t, tc.status, rec.Code)

		body := decode(t, rec)
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.Equal(t, tc.code, body.Error.Code)
	}
}

func TestErrorMapsValidationErrors(t *testing.T) {
	type input struct {
		Quantity int `validate:"min=1"`
	}
	err := validator.New().Struct(input{})

	c, rec := newContext()
	require.NoError(t, Error(c, err))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "quantity must be at least 1", body.Error.Message)
}

func TestPaginatedComputesTotalPages(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Paginated(c, []int{1, 2}, 5, 1, 2))

	var body struct {
		Data PaginatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.TotalPages)
	assert.Equal(t, int64(5), body.Data.Total)
}
