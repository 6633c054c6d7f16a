// Package router initializes the HTTP router (using Echo).
//
// It registers the middleware stack and maps the API routes to their
// handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/jnowak/users-service/internal/handler"
	"github.com/jnowak/users-service/internal/middleware"
)

// New assembles the Echo instance: error handling first, then the middleware
// chain in dependency order (recovery, request id, context logger, request
// log, CORS, secure headers), then the routes.
func New(h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	e.Use(m.Global.Recover())
	e.Use(middleware.RequestID())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Global.RequestLogger())
	e.Use(m.Global.CORS())
	e.Use(m.Global.Secure())

	registerSystemRoutes(e, h)
	registerUserRoutes(e, h)

	return e
}
