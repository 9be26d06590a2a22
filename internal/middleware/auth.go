package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deppfellow/job-board/internal/auth"
	"github.com/deppfellow/job-board/internal/errs"
	"github.com/deppfellow/job-board/internal/lib/session"
	"github.com/deppfellow/job-board/internal/server"
	"github.com/labstack/echo/v4"
)

// SessionLookup resolves a session token to a company id and refreshes its
// expiry to TTL. *session.Store implements it.
type SessionLookup interface {
	Lookup(ctx context.Context, token string) (int64, error)
	TTL() time.Duration
}

// AuthMiddleware turns the session cookie into an auth.Principal.
type AuthMiddleware struct {
	server   *server.Server
	sessions SessionLookup
}

func NewAuthMiddleware(s *server.Server, sessions SessionLookup) *AuthMiddleware {
	return &AuthMiddleware{
		server:   s,
		sessions: sessions,
	}
}

// LoadSession attaches the signed-in company, if any, to the request.
//
// It never rejects a request: a missing, unknown or expired cookie leaves
// the request anonymous, and a Redis failure is logged and treated the
// same way. Routes that need a company add RequireAuth.
//
// A valid session gets its cookie re-issued so the browser keeps it for as
// long as the store does.
func (am *AuthMiddleware) LoadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(am.server.Config.Auth.CookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		req := c.Request()
		companyID, err := am.sessions.Lookup(req.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				am.server.Logger.Error().
					Err(err).
					Str("request_id", GetRequestID(c)).
					Msg("session lookup failed, continuing anonymously")
			}
			return next(c)
		}

		am.SetSessionCookie(c, cookie.Value)
		c.Set(CompanyIDKey, companyID)
		c.SetRequest(req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{CompanyID: companyID})))

		return next(c)
	}
}

// SigninPath is where RequireAuth points anonymous callers.
const SigninPath = "/api/v1/auth/signin"

// RequireAuth rejects anonymous requests with 401 and a hint to sign in.
func (am *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := auth.FromContext(c.Request().Context()); !ok {
			err := errs.NewUnauthorizedError("Please sign in to continue.", true)
			err.Action = &errs.Action{
				Type:    errs.ActionTypeRedirect,
				Message: "Sign in",
				Value:   SigninPath,
			}
			return err
		}
		return next(c)
	}
}

// SetSessionCookie hands token to the browser.
func (am *AuthMiddleware) SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(am.sessionCookie(token, int(am.sessions.TTL().Seconds())))
}

// ClearSessionCookie expires the session cookie.
func (am *AuthMiddleware) ClearSessionCookie(c echo.Context) {
	c.SetCookie(am.sessionCookie("", -1))
}

// SessionToken returns the raw session cookie value, or "".
func (am *AuthMiddleware) SessionToken(c echo.Context) string {
	cookie, err := c.Cookie(am.server.Config.Auth.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (am *AuthMiddleware) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     am.server.Config.Auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   am.server.Config.Auth.CookieSecure || am.server.Config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}
