package repository

import (
	"github.com/deppfellow/job-board/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Company *CompanyRepository
	Job     *JobRepository
}

// NewRepositories builds every repository on the shared pool in s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Company: NewCompanyRepository(s.DB.Pool),
		Job:     NewJobRepository(s.DB.Pool),
	}
}
