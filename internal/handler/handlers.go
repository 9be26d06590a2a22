package handler

import (
	"github.com/deppfellow/job-board/internal/server"
	"github.com/deppfellow/job-board/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Company *CompanyHandler
	Job     *JobHandler
}

func NewHandlers(s *server.Server, services *service.Services, cookies SessionCookies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Auth:    NewAuthHandler(s, services.Auth, cookies),
		Company: NewCompanyHandler(s, services.Company),
		Job:     NewJobHandler(s, services.Job),
	}
}
