package service

import (
	"github.com/jnowak/users-service/internal/repository"
	"github.com/jnowak/users-service/internal/server"
)

// Services is the container for all service instances.
type Services struct {
	Users *UsersService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Users: NewUsersService(s, repos.Users),
	}, nil
}
