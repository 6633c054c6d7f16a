package handler

import (
	"github.com/jnowak/users-service/internal/server"
	"github.com/jnowak/users-service/internal/service"
)

// Handlers is the container grouping all HTTP handlers, so router setup
// receives one wired object.
type Handlers struct {
	Health *HealthHandler
	Users  *UsersHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Users:  NewUsersHandler(s, services.Users),
	}
}
