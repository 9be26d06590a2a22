package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/job-board/internal/errs"
	"github.com/deppfellow/job-board/internal/lib/utils"
	"github.com/deppfellow/job-board/internal/model"
	"github.com/deppfellow/job-board/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgEmailTaken         = "An account with that email already exists. Please, try again."
	MsgNameTaken          = "An account with that company name already exists. Please, try again."
	MsgInvalidCredentials = "Invalid credentials.  Please try again."
)

type AuthService struct {
	companies  CompanyStore
	sessions   SessionStore
	mailer     Mailer
	bcryptCost int
}

func NewAuthService(companies CompanyStore, sessions SessionStore, mailer Mailer, bcryptCost int) *AuthService {
	return &AuthService{
		companies:  companies,
		sessions:   sessions,
		mailer:     mailer,
		bcryptCost: bcryptCost,
	}
}

// SignupInput is a validated signup form.
type SignupInput struct {
	Name        string
	Location    string
	Email       string
	Password    string
	Description string
}

// Signup registers a company. The insert itself decides uniqueness: a
// taken name or email comes back from the database as a conflict and is
// reported as a 409.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*model.Company, error) {
	if err := requireFields(requiredField{"name", &in.Name}); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	company, err := s.companies.CreateCompany(ctx, model.NewCompany{
		Name:         in.Name,
		Location:     strings.TrimSpace(in.Location),
		Email:        utils.NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		Description:  strings.TrimSpace(in.Description),
	})
	if err != nil {
		return nil, signupConflict(err)
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Int64("company_id", company.ID).Msg("company signed up")

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(ctx, company.Email, company.Name); err != nil {
			logger.Warn().Err(err).Int64("company_id", company.ID).Msg("failed to send welcome email")
		}
	}

	return company, nil
}

func signupConflict(err error) error {
	var conflict *repository.ConflictError
	if !errors.As(err, &conflict) {
		return err
	}

	code := "COMPANY_ALREADY_EXISTS"
	switch conflict.Field {
	case "email":
		return errs.NewConflictError(MsgEmailTaken, true, &code,
			[]errs.FieldError{{Field: "email", Error: "already exists"}})
	case "name":
		return errs.NewConflictError(MsgNameTaken, true, &code,
			[]errs.FieldError{{Field: "name", Error: "already exists"}})
	default:
		return errs.NewConflictError("An account with those details already exists. Please, try again.", true, &code, nil)
	}
}

// Signin checks credentials and opens a session. Unknown emails and wrong
// passwords get the same 401.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*model.Company, string, error) {
	company, err := s.companies.FindCompanyByEmail(ctx, utils.NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", errs.NewUnauthorizedError(MsgInvalidCredentials, true)
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(company.Password), []byte(password)); err != nil {
		return nil, "", errs.NewUnauthorizedError(MsgInvalidCredentials, true)
	}

	token, err := s.sessions.Create(ctx, company.ID)
	if err != nil {
		return nil, "", err
	}

	zerolog.Ctx(ctx).Info().Int64("company_id", company.ID).Msg("company signed in")

	return company, token, nil
}

// Signout revokes the session token. An empty token is a no-op.
func (s *AuthService) Signout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// Availability tells a signup form whether a name and email are still free.
// It is a hint only: Signup remains the authority.
type Availability struct {
	NameAvailable  *bool `json:"nameAvailable,omitempty"`
	EmailAvailable *bool `json:"emailAvailable,omitempty"`
}

// Availability checks whichever of name and email is non-empty.
func (s *AuthService) Availability(ctx context.Context, name, email string) (*Availability, error) {
	var out Availability

	if name = strings.TrimSpace(name); name != "" {
		free, err := s.isFree(s.companies.FindCompanyByName(ctx, name))
		if err != nil {
			return nil, err
		}
		out.NameAvailable = &free
	}

	if email = utils.NormalizeEmail(email); email != "" {
		free, err := s.isFree(s.companies.FindCompanyByEmail(ctx, email))
		if err != nil {
			return nil, err
		}
		out.EmailAvailable = &free
	}

	return &out, nil
}

func (s *AuthService) isFree(_ *model.Company, err error) (bool, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
