package repository

import (
	"github.com/jnowak/users-service/internal/server"
)

// Repositories is the container for all repository instances.
type Repositories struct {
	Users UsersRepository
}

// NewRepositories constructs the repository container from the application
// container's shared database pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users: NewUsersRepository(s.DB.Pool),
	}
}
