package middleware

import (
	"github.com/deppfellow/job-board/internal/logger"
	"github.com/deppfellow/job-board/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// CompanyIDKey holds the signed-in company id (int64) in the Echo context.
	CompanyIDKey = "company_id"

	// LoggerKey holds the request-scoped *zerolog.Logger in the Echo context.
	LoggerKey = "logger"
)

// ContextEnhancer builds the request-scoped logger.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext derives a logger carrying request_id, method, path, ip,
// New Relic trace ids and the signed-in company id, and stores it both in
// the Echo context and on the request context, where services pick it up
// with zerolog.Ctx.
//
// It must run after RequestID and LoadSession.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", req.Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(req.Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if companyID, ok := GetCompanyID(c); ok {
				contextLogger = contextLogger.With().Int64("company_id", companyID).Logger()
			}

			c.Set(LoggerKey, &contextLogger)
			c.SetRequest(req.WithContext(contextLogger.WithContext(req.Context())))

			return next(c)
		}
	}
}

// GetCompanyID returns the signed-in company id set by LoadSession.
func GetCompanyID(c echo.Context) (int64, bool) {
	companyID, ok := c.Get(CompanyIDKey).(int64)
	return companyID, ok
}

// GetLogger returns the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}

	nop := zerolog.Nop()
	return &nop
}
