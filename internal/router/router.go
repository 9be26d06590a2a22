// Package router builds the echo instance: the global middleware chain,
// the system routes and the versioned API routes.
package router

import (
	"github.com/deppfellow/job-board/internal/handler"
	"github.com/deppfellow/job-board/internal/middleware"
	"github.com/deppfellow/job-board/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the application's echo instance.
//
// Order matters: the request id comes first so every later layer can log
// it, the New Relic transaction must exist before LoadSession and
// EnhanceTracing annotate it, and the request logger needs the enhanced
// context logger.
func NewRouter(s *server.Server, h *handler.Handlers, mws *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		mws.Tracing.NewRelicMiddleware(),
		mws.Auth.LoadSession,
		mws.Tracing.EnhanceTracing(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Global.RequestLogger(),
		mws.Global.Recover(),
		mws.Global.Secure(),
		mws.Global.CORS(),
		mws.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerAuthRoutes(v1, h, mws)
	registerJobRoutes(v1, h)
	registerCompanyRoutes(v1, h, mws)

	return router
}
