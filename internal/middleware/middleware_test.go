package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/job-board/internal/auth"
	"github.com/deppfellow/job-board/internal/config"
	"github.com/deppfellow/job-board/internal/errs"
	"github.com/deppfellow/job-board/internal/lib/session"
	"github.com/deppfellow/job-board/internal/middleware"
	"github.com/deppfellow/job-board/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const cookieName = "sid"

type fakeLookup map[string]int64

func (fakeLookup) TTL() time.Duration { return time.Hour }

func (f fakeLookup) Lookup(_ context.Context, token string) (int64, error) {
	if token == "broken" {
		return 0, errors.New("redis down")
	}
	id, ok := f[token]
	if !ok {
		return 0, session.ErrNotFound
	}
	return id, nil
}

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Auth:    config.AuthConfig{CookieName: cookieName, SessionTTL: time.Hour},
			Storage: config.StorageConfig{MaxLogoSize: 1 << 20},
		},
		Logger: &logger,
	}
}

// newEcho wires the session middlewares around a handler that reports the
// principal it sees.
func newEcho(t *testing.T) *echo.Echo {
	t.Helper()

	s := newTestServer()
	mws := middleware.NewMiddlewares(s, fakeLookup{"good": 7})

	e := echo.New()
	e.HTTPErrorHandler = mws.Global.GlobalErrorHandler
	e.Use(middleware.RequestID(), mws.Auth.LoadSession, mws.ContextEnhancer.EnhanceContext())

	whoami := func(c echo.Context) error {
		p, ok := auth.FromContext(c.Request().Context())
		if !ok {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.JSON(http.StatusOK, p)
	}

	e.GET("/whoami", whoami)
	e.GET("/private", whoami, mws.Auth.RequireAuth)
	e.GET("/fail", func(c echo.Context) error {
		return &pgconn.PgError{Code: "23505", TableName: "companies", ConstraintName: "companies_email_key"}
	})
	e.GET("/forbidden", func(c echo.Context) error {
		return errs.NewForbiddenError("You cannot do that!", true)
	})

	return e
}

func do(e *echo.Echo, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestLoadSession(t *testing.T) {
	e := newEcho(t)

	tests := []struct {
		name   string
		cookie string
		want   string
	}{
		{"no cookie", "", "anonymous"},
		{"unknown token", "stale", "anonymous"},
		{"store failure", "broken", "anonymous"},
		{"valid token", "good", `{"CompanyID":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, "/whoami", tt.cookie)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadSessionRefreshesCookie(t *testing.T) {
	e := newEcho(t)

	rec := do(e, "/whoami", "good")
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want the session cookie re-issued", len(cookies))
	}
	if got := cookies[0]; got.Name != cookieName || got.Value != "good" || got.MaxAge != 3600 {
		t.Errorf("cookie = %+v", got)
	}

	if rec := do(e, "/whoami", "stale"); len(rec.Result().Cookies()) != 0 {
		t.Error("cookie issued for an unknown session")
	}
}

func TestRequireAuth(t *testing.T) {
	e := newEcho(t)

	rec := do(e, "/private", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Code != "UNAUTHORIZED" || !body.Override {
		t.Errorf("error body = %+v", body)
	}
	if body.Action == nil || body.Action.Type != errs.ActionTypeRedirect || body.Action.Value != middleware.SigninPath {
		t.Errorf("action = %+v, want redirect to %s", body.Action, middleware.SigninPath)
	}

	if rec := do(e, "/private", "good"); rec.Code != http.StatusOK {
		t.Errorf("signed-in status = %d, want 200", rec.Code)
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	e := newEcho(t)

	tests := []struct {
		path       string
		wantStatus int
		wantCode   string
	}{
		{"/fail", http.StatusConflict, "COMPANY_ALREADY_EXISTS"},
		{"/forbidden", http.StatusForbidden, "FORBIDDEN"},
		{"/missing", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(e, tt.path, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body := decodeError(t, rec); body.Code != tt.wantCode || body.Status != tt.wantStatus {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	e := newEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.RequestIDHeader, "upstream-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Header().Get(middleware.RequestIDHeader); got != "upstream-123" {
		t.Errorf("request id = %q, want upstream id", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.RequestIDHeader, "bad id\nwith newline")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Header().Get(middleware.RequestIDHeader); got == "" || strings.ContainsAny(got, " \n") {
		t.Errorf("request id = %q, want a generated id", got)
	}
}

func TestSessionCookie(t *testing.T) {
	s := newTestServer()
	am := middleware.NewAuthMiddleware(s, fakeLookup{})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	am.SetSessionCookie(c, "token")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	got := cookies[0]
	if got.Name != cookieName || got.Value != "token" || !got.HttpOnly || got.MaxAge != 3600 {
		t.Errorf("cookie = %+v", got)
	}
}
