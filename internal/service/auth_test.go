package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/job-board/internal/errs"
	"github.com/deppfellow/job-board/internal/service"
	"golang.org/x/crypto/bcrypt"
)

func requireHTTPError(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v (%T), want *errs.HTTPError with status %d", err, err, status)
	}
	if httpErr.Status != status {
		t.Fatalf("Status = %d, want %d (%s)", httpErr.Status, status, httpErr.Message)
	}
	return httpErr
}

var acmeSignup = service.SignupInput{
	Name:        " Acme ",
	Location:    "NY",
	Email:       " A@Acme.com",
	Password:    "Abcdef1!",
	Description: "Rockets",
}

func newAuthService() (*service.AuthService, *fakeCompanies, *fakeSessions, *fakeMailer) {
	companies := newFakeCompanies()
	sessions := newFakeSessions()
	mailer := &fakeMailer{}
	return service.NewAuthService(companies, sessions, mailer, bcrypt.MinCost), companies, sessions, mailer
}

func TestAuthService_Signup(t *testing.T) {
	svc, _, _, mailer := newAuthService()

	company, err := svc.Signup(context.Background(), acmeSignup)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if company.Name != "Acme" || company.Email != "a@acme.com" {
		t.Errorf("company = %+v, want trimmed name and normalized email", company)
	}
	if company.Password == acmeSignup.Password {
		t.Fatal("password stored in clear text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(company.Password), []byte(acmeSignup.Password)); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "a@acme.com" {
		t.Errorf("welcome emails = %v", mailer.sent)
	}
}

func TestAuthService_SignupMailerFailureIsNotFatal(t *testing.T) {
	svc, _, _, mailer := newAuthService()
	mailer.err = errBoom

	if _, err := svc.Signup(context.Background(), acmeSignup); err != nil {
		t.Fatalf("Signup failed because of the mailer: %v", err)
	}
}

func TestAuthService_SignupBlankName(t *testing.T) {
	svc, companies, _, mailer := newAuthService()

	in := acmeSignup
	in.Name = "   "

	_, err := svc.Signup(context.Background(), in)
	httpErr := requireHTTPError(t, err, http.StatusBadRequest)
	if httpErr.Message != service.MsgRequiredInformation {
		t.Errorf("Message = %q", httpErr.Message)
	}
	if all, _ := companies.ListCompanies(context.Background()); len(all) != 0 {
		t.Errorf("%d companies stored", len(all))
	}
	if len(mailer.sent) != 0 {
		t.Error("welcome email sent for a rejected signup")
	}
}

func TestAuthService_SignupConflicts(t *testing.T) {
	svc, _, _, _ := newAuthService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, acmeSignup); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	tests := []struct {
		name    string
		in      service.SignupInput
		wantMsg string
	}{
		{
			name:    "email",
			in:      service.SignupInput{Name: "Other", Email: "a@acme.com", Password: "Abcdef1!"},
			wantMsg: service.MsgEmailTaken,
		},
		{
			name:    "name",
			in:      service.SignupInput{Name: "Acme", Email: "b@acme.com", Password: "Abcdef1!"},
			wantMsg: service.MsgNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tt.in)
			httpErr := requireHTTPError(t, err, http.StatusConflict)
			if httpErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", httpErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestAuthService_Signin(t *testing.T) {
	svc, _, sessions, _ := newAuthService()
	ctx := context.Background()

	created, err := svc.Signup(ctx, acmeSignup)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	company, token, err := svc.Signin(ctx, "A@ACME.com ", "Abcdef1!")
	if err != nil {
		t.Fatalf("Signin: %v", err)
	}
	if company.ID != created.ID {
		t.Errorf("signed in as %d, want %d", company.ID, created.ID)
	}
	if sessions.sessions[token] != created.ID {
		t.Errorf("session %q maps to %d, want %d", token, sessions.sessions[token], created.ID)
	}

	if err := svc.Signout(ctx, token); err != nil {
		t.Fatalf("Signout: %v", err)
	}
	if _, ok := sessions.sessions[token]; ok {
		t.Error("session still present after Signout")
	}
}

func TestAuthService_SigninInvalid(t *testing.T) {
	svc, _, sessions, _ := newAuthService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, acmeSignup); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	for _, tc := range []struct{ email, password string }{
		{"a@acme.com", "Wrong1!pass"},
		{"nobody@acme.com", "Abcdef1!"},
	} {
		_, _, err := svc.Signin(ctx, tc.email, tc.password)
		httpErr := requireHTTPError(t, err, http.StatusUnauthorized)
		if httpErr.Message != service.MsgInvalidCredentials {
			t.Errorf("Message = %q", httpErr.Message)
		}
	}

	if len(sessions.sessions) != 0 {
		t.Errorf("failed sign-ins created %d sessions", len(sessions.sessions))
	}
}

func TestAuthService_Availability(t *testing.T) {
	svc, _, _, _ := newAuthService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, acmeSignup); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	got, err := svc.Availability(ctx, "Acme", "new@acme.com")
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if got.NameAvailable == nil || *got.NameAvailable {
		t.Errorf("NameAvailable = %v, want false", got.NameAvailable)
	}
	if got.EmailAvailable == nil || !*got.EmailAvailable {
		t.Errorf("EmailAvailable = %v, want true", got.EmailAvailable)
	}

	got, err = svc.Availability(ctx, "", "")
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if got.NameAvailable != nil || got.EmailAvailable != nil {
		t.Errorf("empty query reported %+v", got)
	}
}
