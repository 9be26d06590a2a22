package service

import (
	"fmt"

	"github.com/deppfellow/job-board/internal/lib/email"
	"github.com/deppfellow/job-board/internal/lib/session"
	"github.com/deppfellow/job-board/internal/lib/storage"
	"github.com/deppfellow/job-board/internal/repository"
	"github.com/deppfellow/job-board/internal/server"
)

type Services struct {
	Auth    *AuthService
	Company *CompanyService
	Job     *JobService

	// Sessions is shared with the session middleware.
	Sessions *session.Store
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	sessions := session.NewStore(s.Redis, s.Config.Auth.SessionTTL)

	logos, err := storage.NewLogoStore(s.Config.Storage.LogoDir, s.Config.Storage.MaxLogoSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logo storage: %w", err)
	}

	mailer := email.NewClient(s.Config.Integration, s.Logger)
	if !mailer.Enabled() {
		s.Logger.Warn().Msg("resend API key not configured, welcome emails are disabled")
	}

	return &Services{
		Auth:     NewAuthService(repos.Company, sessions, mailer, s.Config.Auth.BcryptCost),
		Company:  NewCompanyService(repos.Company, repos.Job, logos),
		Job:      NewJobService(repos.Company, repos.Job),
		Sessions: sessions,
	}, nil
}
