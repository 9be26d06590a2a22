package middleware

import (
	"time"

	"github.com/deppfellow/job-board/internal/errs"
	"github.com/deppfellow/job-board/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles credential endpoints per client IP and
// reports rejections to New Relic.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit allows perMinute requests per client IP with bursts of burst.
// endpoint names the limiter in logs and New Relic events.
func (r *RateLimitMiddleware) Limit(endpoint string, perMinute float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perMinute / 60),
		Burst:     burst,
		ExpiresIn: 10 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(endpoint)
			GetLogger(c).Warn().
				Str("endpoint", endpoint).
				Str("identifier", identifier).
				Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError()
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewTooManyRequestsError()
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event when New Relic runs.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
