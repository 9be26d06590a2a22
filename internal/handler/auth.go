package handler

import (
	"context"

	"github.com/deppfellow/job-board/internal/model"
	"github.com/deppfellow/job-board/internal/server"
	"github.com/deppfellow/job-board/internal/service"
	"github.com/deppfellow/job-board/internal/validation"
	"github.com/labstack/echo/v4"
)

const (
	MsgAccountCreated = "Account successfully created!"
	MsgSignedIn       = "You have successfully signed in!"
)

// AuthService is the part of *service.AuthService the auth routes use.
type AuthService interface {
	Signup(ctx context.Context, in service.SignupInput) (*model.Company, error)
	Signin(ctx context.Context, email, password string) (*model.Company, string, error)
	Signout(ctx context.Context, token string) error
	Availability(ctx context.Context, name, email string) (*service.Availability, error)
}

// SessionCookies reads and writes the session cookie.
// *middleware.AuthMiddleware implements it.
type SessionCookies interface {
	SetSessionCookie(c echo.Context, token string)
	ClearSessionCookie(c echo.Context)
	SessionToken(c echo.Context) string
}

type AuthHandler struct {
	Handler
	auth    AuthService
	cookies SessionCookies
}

func NewAuthHandler(s *server.Server, auth AuthService, cookies SessionCookies) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
		cookies: cookies,
	}
}

type SignupRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Location    string `json:"location" validate:"max=255"`
	Email       string `json:"email" validate:"required,email,max=45"`
	Password    string `json:"password" validate:"required,password,max=45"`
	Description string `json:"description" validate:"max=1000"`
}

func (r *SignupRequest) Validate() error {
	return validation.Struct(r)
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,max=45"`
	Password string `json:"password" validate:"required,max=45"`
}

func (r *SigninRequest) Validate() error {
	return validation.Struct(r)
}

type SignoutRequest struct{}

func (r *SignoutRequest) Validate() error {
	return nil
}

type AvailabilityRequest struct {
	Name  string `query:"name" json:"name" validate:"max=255"`
	Email string `query:"email" json:"email" validate:"max=45"`
}

func (r *AvailabilityRequest) Validate() error {
	return validation.Struct(r)
}

// CompanyResponse pairs a company with a message the UI can flash.
type CompanyResponse struct {
	Message string         `json:"message"`
	Company *model.Company `json:"company"`
}

func (h *AuthHandler) Signup(c echo.Context, req *SignupRequest) (*CompanyResponse, error) {
	company, err := h.auth.Signup(c.Request().Context(), service.SignupInput{
		Name:        req.Name,
		Location:    req.Location,
		Email:       req.Email,
		Password:    req.Password,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	return &CompanyResponse{Message: MsgAccountCreated, Company: company}, nil
}

// Signin opens a session and hands its token to the browser as a cookie.
func (h *AuthHandler) Signin(c echo.Context, req *SigninRequest) (*CompanyResponse, error) {
	company, token, err := h.auth.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	h.cookies.SetSessionCookie(c, token)

	return &CompanyResponse{Message: MsgSignedIn, Company: company}, nil
}

// Signout always clears the cookie, even when the session is already gone.
func (h *AuthHandler) Signout(c echo.Context, _ *SignoutRequest) error {
	token := h.cookies.SessionToken(c)
	h.cookies.ClearSessionCookie(c)
	return h.auth.Signout(c.Request().Context(), token)
}

func (h *AuthHandler) Availability(c echo.Context, req *AvailabilityRequest) (*service.Availability, error) {
	return h.auth.Availability(c.Request().Context(), req.Name, req.Email)
}
