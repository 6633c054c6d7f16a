package handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jnowak/users-service/internal/domain"
	"github.com/jnowak/users-service/internal/errs"
	"github.com/jnowak/users-service/internal/server"
	"github.com/jnowak/users-service/internal/service"
	"github.com/jnowak/users-service/internal/validation"
)

var validate = validator.New()

// userNotFoundCode is the stable machine code for a missing user id.
var userNotFoundCode = "USER_NOT_FOUND"

// UsersHandler terminates the /api/users endpoints.
type UsersHandler struct {
	Handler
	users *service.UsersService
}

// NewUsersHandler constructs the users handler.
func NewUsersHandler(s *server.Server, users *service.UsersService) *UsersHandler {
	return &UsersHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// --- Request payloads -------------------------------------------------------

// ListUsersRequest carries the pagination and sort parameters of the listing.
// Size zero means "use the configured default". Sort is "field" or
// "field,asc|desc" over id, first_name, last_name.
type ListUsersRequest struct {
	Page int    `query:"page" validate:"min=0"`
	Size int    `query:"size" validate:"min=0"`
	Sort string `query:"sort"`
}

func (r *ListUsersRequest) Validate() error {
	return validate.Struct(r)
}

// GetUserRequest identifies a single user by path parameter.
type GetUserRequest struct {
	ID int64 `param:"id"`
}

func (r *GetUserRequest) Validate() error {
	return validate.Struct(r)
}

// SearchByLastNameRequest carries the lastName query parameter. The pointer
// distinguishes a missing parameter (a client protocol error) from a
// present-but-empty value (a valid input that matches nothing).
type SearchByLastNameRequest struct {
	LastName *string `query:"lastName"`
}

func (r *SearchByLastNameRequest) Validate() error {
	if r.LastName == nil {
		return validation.CustomValidationErrors{
			{Field: "lastName", Message: "query parameter is required"},
		}
	}
	return nil
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
}

func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateUserRequest is the body of PUT /api/users/:id; both fields are
// required.
type UpdateUserRequest struct {
	// ID comes from the path only; a stray "id" in the body must not win.
	ID        int64  `param:"id" json:"-"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
}

func (r *UpdateUserRequest) Validate() error {
	return validate.Struct(r)
}

// PatchUserRequest is the body of PATCH /api/users/:id; either or both fields
// may be supplied, and absent fields keep their stored values.
type PatchUserRequest struct {
	ID        int64   `param:"id" json:"-"`
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,min=2,max=50"`
}

func (r *PatchUserRequest) Validate() error {
	return validate.Struct(r)
}

// DeleteUserRequest identifies the user to delete.
type DeleteUserRequest struct {
	ID int64 `param:"id"`
}

func (r *DeleteUserRequest) Validate() error {
	return validate.Struct(r)
}

// --- Endpoints --------------------------------------------------------------

// ListUsers handles GET /api/users.
func (h *UsersHandler) ListUsers(c echo.Context, req *ListUsersRequest) (domain.Page[domain.User], error) {
	return h.users.ListAll(c.Request().Context(), req.Page, req.Size, req.Sort)
}

// GetUser handles GET /api/users/:id.
func (h *UsersHandler) GetUser(c echo.Context, req *GetUserRequest) (domain.User, error) {
	user, found, err := h.users.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return domain.User{}, err
	}
	if !found {
		return domain.User{}, notFound(req.ID)
	}
	return user, nil
}

// SearchByLastName handles GET /api/users-by-lastname. The response keeps
// duplicate name pairs (each row is a distinct user) and withholds ids.
func (h *UsersHandler) SearchByLastName(c echo.Context, req *SearchByLastNameRequest) ([]domain.UserName, error) {
	users, err := h.users.FindByLastName(c.Request().Context(), *req.LastName)
	if err != nil {
		return nil, err
	}

	names := make([]domain.UserName, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name())
	}
	return names, nil
}

// FirstNamesByLastName handles GET /api/users-firstnames-by-lastname,
// returning a duplicate-free list of first names.
func (h *UsersHandler) FirstNamesByLastName(c echo.Context, req *SearchByLastNameRequest) ([]string, error) {
	firstNames, err := h.users.FirstNamesByLastName(c.Request().Context(), *req.LastName)
	if err != nil {
		return nil, err
	}
	if firstNames == nil {
		firstNames = []string{}
	}
	return firstNames, nil
}

// CreateUser handles POST /api/users.
func (h *UsersHandler) CreateUser(c echo.Context, req *CreateUserRequest) (domain.User, error) {
	return h.users.Create(c.Request().Context(), req.FirstName, req.LastName)
}

// UpdateUser handles PUT /api/users/:id.
func (h *UsersHandler) UpdateUser(c echo.Context, req *UpdateUserRequest) (domain.User, error) {
	user, found, err := h.users.FullUpdate(c.Request().Context(), req.ID, req.FirstName, req.LastName)
	if err != nil {
		return domain.User{}, err
	}
	if !found {
		return domain.User{}, notFound(req.ID)
	}
	return user, nil
}

// PatchUser handles PATCH /api/users/:id.
func (h *UsersHandler) PatchUser(c echo.Context, req *PatchUserRequest) (domain.User, error) {
	patch := domain.PatchUser{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	user, found, err := h.users.PartialUpdate(c.Request().Context(), req.ID, patch)
	if err != nil {
		return domain.User{}, err
	}
	if !found {
		return domain.User{}, notFound(req.ID)
	}
	return user, nil
}

// DeleteUser handles DELETE /api/users/:id, responding 200 with an empty
// body on success.
func (h *UsersHandler) DeleteUser(c echo.Context, req *DeleteUserRequest) error {
	deleted, err := h.users.DeleteByID(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound(req.ID)
	}
	return nil
}

func notFound(id int64) error {
	return errs.NewNotFoundError(fmt.Sprintf("User's id not found: %d", id), &userNotFoundCode)
}
