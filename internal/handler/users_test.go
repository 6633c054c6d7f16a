package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnowak/users-service/internal/config"
	"github.com/jnowak/users-service/internal/handler"
	"github.com/jnowak/users-service/internal/middleware"
	"github.com/jnowak/users-service/internal/repository"
	"github.com/jnowak/users-service/internal/router"
	"github.com/jnowak/users-service/internal/server"
	"github.com/jnowak/users-service/internal/service"
)

// newTestRouter assembles the full HTTP stack (router, middleware, handlers,
// service) over the in-memory repository, so tests exercise binding,
// validation, and the global error handler exactly as production does.
func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	nop := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
			},
			Users: config.UsersConfig{
				LastNameMatch:   config.MatchContains,
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
		},
		Logger: &nop,
	}

	repos := &repository.Repositories{Users: repository.NewMemoryUsersRepository()}
	services, err := service.NewServices(s, repos)
	require.NoError(t, err)

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	return router.New(handlers, middlewares)
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createUser(t *testing.T, e *echo.Echo, firstName, lastName string) map[string]any {
	t.Helper()

	body := fmt.Sprintf(`{"first_name":%q,"last_name":%q}`, firstName, lastName)
	rec := doJSON(t, e, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}

func TestCreateUser(t *testing.T) {
	e := newTestRouter(t)

	user := createUser(t, e, "Jan", "Nowak")
	assert.Equal(t, "Jan", user["first_name"])
	assert.Equal(t, "Nowak", user["last_name"])
	assert.EqualValues(t, 1, user["id"])
}

func TestCreateUser_Validation(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing first name", `{"last_name":"Nowak"}`, "first_name"},
		{"too short first name", `{"first_name":"J","last_name":"Nowak"}`, "first_name"},
		{"too long last name", fmt.Sprintf(`{"first_name":"Jan","last_name":%q}`, strings.Repeat("a", 51)), "last_name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, e, http.MethodPost, "/api/users", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var envelope struct {
				Code   string `json:"code"`
				Errors []struct {
					Field string `json:"field"`
					Error string `json:"error"`
				} `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, "BAD_REQUEST", envelope.Code)
			require.Len(t, envelope.Errors, 1)
			assert.Equal(t, tc.field, envelope.Errors[0].Field)
		})
	}
}

func TestCreateUser_MalformedJSON(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodPost, "/api/users", `{"first_name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUser(t *testing.T) {
	e := newTestRouter(t)

	created := createUser(t, e, "Jan", "Nowak")
	id := int64(created["id"].(float64))

	rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/users/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Jan", user["first_name"])
	assert.Equal(t, "Nowak", user["last_name"])
}

func TestGetUser_NotFound(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodGet, "/api/users/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "USER_NOT_FOUND", envelope["code"])
}

func TestGetUser_NonNumericID(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodGet, "/api/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUsers(t *testing.T) {
	e := newTestRouter(t)

	createUser(t, e, "Jan", "Nowak")
	createUser(t, e, "Anna", "Nowak")
	createUser(t, e, "Bruce", "Lee")

	rec := doJSON(t, e, http.MethodGet, "/api/users?page=0&size=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Content []struct {
			ID        int64  `json:"id"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		} `json:"content"`
		Page          int   `json:"page"`
		Size          int   `json:"size"`
		TotalElements int64 `json:"total_elements"`
		TotalPages    int   `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Jan", page.Content[0].FirstName)
}

func TestListUsers_Sorted(t *testing.T) {
	e := newTestRouter(t)

	createUser(t, e, "Jan", "Nowak")
	createUser(t, e, "Bruce", "Lee")

	rec := doJSON(t, e, http.MethodGet, "/api/users?sort=last_name,asc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Content []struct {
			LastName string `json:"last_name"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Lee", page.Content[0].LastName)
	assert.Equal(t, "Nowak", page.Content[1].LastName)
}

func TestListUsers_MalformedParams(t *testing.T) {
	e := newTestRouter(t)

	for _, target := range []string{
		"/api/users?page=abc",
		"/api/users?page=-1",
		"/api/users?size=oops",
		"/api/users?sort=secrets",
	} {
		rec := doJSON(t, e, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestSearchByLastName_MissingParam(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodGet, "/api/users-by-lastname", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Errors, 1)
	assert.Equal(t, "lastName", envelope.Errors[0].Field)
}

func TestSearchByLastName_EmptyValueIsEmptyList(t *testing.T) {
	e := newTestRouter(t)

	createUser(t, e, "Jan", "Nowak")

	rec := doJSON(t, e, http.MethodGet, "/api/users-by-lastname?lastName=", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSearchByLastName_OmitsIDs(t *testing.T) {
	e := newTestRouter(t)

	createUser(t, e, "Jan", "Nowak")
	createUser(t, e, "Jan", "Nowak")

	rec := doJSON(t, e, http.MethodGet, "/api/users-by-lastname?lastName=nowak", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))

	// Duplicate name pairs stay: two rows are two users.
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotContains(t, r, "id")
		assert.Equal(t, "Jan", r["first_name"])
		assert.Equal(t, "Nowak", r["last_name"])
	}
}

func TestFirstNamesByLastName(t *testing.T) {
	e := newTestRouter(t)

	createUser(t, e, "Jan", "Nowak")
	createUser(t, e, "Jan", "Nowak")
	createUser(t, e, "Anna", "Nowak")

	rec := doJSON(t, e, http.MethodGet, "/api/users-firstnames-by-lastname?lastName=Nowak", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Jan","Anna"]`, rec.Body.String())
}

func TestFirstNamesByLastName_MissingParam(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodGet, "/api/users-firstnames-by-lastname", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	e := newTestRouter(t)

	created := createUser(t, e, "Jan", "Nowak")
	id := int64(created["id"].(float64))

	rec := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/users/%d", id),
		`{"first_name":"Adam","last_name":"Kowalski"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var user map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.EqualValues(t, id, user["id"])
	assert.Equal(t, "Adam", user["first_name"])
	assert.Equal(t, "Kowalski", user["last_name"])
}

func TestUpdateUser_RequiresBothFields(t *testing.T) {
	e := newTestRouter(t)

	created := createUser(t, e, "Jan", "Nowak")
	id := int64(created["id"].(float64))

	rec := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/users/%d", id),
		`{"first_name":"Adam"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser_NotFound(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodPut, "/api/users/42",
		`{"first_name":"Adam","last_name":"Kowalski"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchUser_MergesSuppliedFields(t *testing.T) {
	e := newTestRouter(t)

	created := createUser(t, e, "Jan", "Nowak")
	id := int64(created["id"].(float64))

	rec := doJSON(t, e, http.MethodPatch, fmt.Sprintf("/api/users/%d", id),
		`{"first_name":"Adam"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var user map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Adam", user["first_name"])
	assert.Equal(t, "Nowak", user["last_name"])
}

func TestPatchUser_InvalidField(t *testing.T) {
	e := newTestRouter(t)

	created := createUser(t, e, "Jan", "Nowak")
	id := int64(created["id"].(float64))

	rec := doJSON(t, e, http.MethodPatch, fmt.Sprintf("/api/users/%d", id),
		fmt.Sprintf(`{"last_name":%q}`, strings.Repeat("a", 51)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchUser_NotFound(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodPatch, "/api/users/42", `{"first_name":"Adam"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	e := newTestRouter(t)

	created := createUser(t, e, "Jan", "Nowak")
	id := int64(created["id"].(float64))

	rec := doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	// Deleting again reports not found.
	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/users/%d", id), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(t, e, http.MethodGet, "/api/unknown", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Route not found", envelope["message"])
}

func TestRequestIDEchoedBack(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(middleware.RequestIDHeader, "test-correlation-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "test-correlation-id", rec.Header().Get(middleware.RequestIDHeader))
}
