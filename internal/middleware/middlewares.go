// Package middleware contains the HTTP middleware stack: request
// identification, request-scoped logging, and the global middlewares and
// error handler applied to every route.
package middleware

import (
	"github.com/jnowak/users-service/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server so
// router setup receives a single wired object.
type Middlewares struct {
	// Global holds middleware applied across the whole API: CORS, request
	// logging, panic recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger
	// (request_id, method, path, ip).
	ContextEnhancer *ContextEnhancer
}

// NewMiddlewares constructs all middleware components from the application
// container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
	}
}
