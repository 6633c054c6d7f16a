package validation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnowak/users-service/internal/errs"
	"github.com/jnowak/users-service/internal/validation"
)

var validate = validator.New()

type namedRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
}

func (r *namedRequest) Validate() error {
	return validate.Struct(r)
}

type customRequest struct {
	LastName *string `query:"lastName"`
}

func (r *customRequest) Validate() error {
	if r.LastName == nil {
		return validation.CustomValidationErrors{
			{Field: "lastName", Message: "query parameter is required"},
		}
	}
	return nil
}

func newContext(t *testing.T, method, target, body string) echo.Context {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_OK(t *testing.T) {
	c := newContext(t, http.MethodPost, "/", `{"first_name":"Jan"}`)

	payload := &namedRequest{}
	require.NoError(t, validation.BindAndValidate(c, payload))
	assert.Equal(t, "Jan", payload.FirstName)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing", `{}`, "is required"},
		{"too short", `{"first_name":"J"}`, "must be at least 2 characters"},
		{"too long", `{"first_name":"` + strings.Repeat("a", 51) + `"}`, "must not exceed 50 characters"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newContext(t, http.MethodPost, "/", tc.body)

			err := validation.BindAndValidate(c, &namedRequest{})
			require.Error(t, err)

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			require.Len(t, httpErr.Errors, 1)
			// Field names are reported in their wire form.
			assert.Equal(t, "first_name", httpErr.Errors[0].Field)
			assert.Equal(t, tc.wantMsg, httpErr.Errors[0].Error)
		})
	}
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	c := newContext(t, http.MethodPost, "/", `{"first_name":`)

	err := validation.BindAndValidate(c, &namedRequest{})
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	c := newContext(t, http.MethodGet, "/", "")

	err := validation.BindAndValidate(c, &customRequest{})
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "lastName", httpErr.Errors[0].Field)

	present := newContext(t, http.MethodGet, "/?lastName=", "")
	require.NoError(t, validation.BindAndValidate(present, &customRequest{}))
}
