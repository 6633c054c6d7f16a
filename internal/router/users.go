package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jnowak/users-service/internal/handler"
)

// registerUserRoutes maps the users API. All endpoints respond 200 on
// success, including create and delete.
func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	api := r.Group("/api")
	u := h.Users

	api.GET("/users", handler.Handle(u.Handler, u.ListUsers, http.StatusOK,
		func() *handler.ListUsersRequest { return &handler.ListUsersRequest{} }))

	api.POST("/users", handler.Handle(u.Handler, u.CreateUser, http.StatusOK,
		func() *handler.CreateUserRequest { return &handler.CreateUserRequest{} }))

	api.GET("/users/:id", handler.Handle(u.Handler, u.GetUser, http.StatusOK,
		func() *handler.GetUserRequest { return &handler.GetUserRequest{} }))

	api.PUT("/users/:id", handler.Handle(u.Handler, u.UpdateUser, http.StatusOK,
		func() *handler.UpdateUserRequest { return &handler.UpdateUserRequest{} }))

	api.PATCH("/users/:id", handler.Handle(u.Handler, u.PatchUser, http.StatusOK,
		func() *handler.PatchUserRequest { return &handler.PatchUserRequest{} }))

	api.DELETE("/users/:id", handler.HandleNoContent(u.Handler, u.DeleteUser, http.StatusOK,
		func() *handler.DeleteUserRequest { return &handler.DeleteUserRequest{} }))

	api.GET("/users-by-lastname", handler.Handle(u.Handler, u.SearchByLastName, http.StatusOK,
		func() *handler.SearchByLastNameRequest { return &handler.SearchByLastNameRequest{} }))

	api.GET("/users-firstnames-by-lastname", handler.Handle(u.Handler, u.FirstNamesByLastName, http.StatusOK,
		func() *handler.SearchByLastNameRequest { return &handler.SearchByLastNameRequest{} }))
}
