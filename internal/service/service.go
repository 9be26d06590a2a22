// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations (hashing, ownership checks), calls
// repository methods to interact with the data and turns
// repository errors into *errs.HTTPError values.
package service

import (
	"context"
	"io"
	"strings"

	"github.com/deppfellow/job-board/internal/auth"
	"github.com/deppfellow/job-board/internal/errs"
	"github.com/deppfellow/job-board/internal/model"
)

// CompanyStore is the company persistence used by the services.
// *repository.CompanyRepository implements it.
type CompanyStore interface {
	ListCompanies(ctx context.Context) ([]model.Company, error)
	FindCompanyByID(ctx context.Context, id int64) (*model.Company, error)
	FindCompanyByName(ctx context.Context, name string) (*model.Company, error)
	FindCompanyByEmail(ctx context.Context, email string) (*model.Company, error)
	CreateCompany(ctx context.Context, in model.NewCompany) (*model.Company, error)
	UpdateCompanyProfile(ctx context.Context, id int64, profile model.CompanyProfile) (*model.Company, error)
	UpdateCompanyLogo(ctx context.Context, id int64, logo string) (*model.Company, error)
}

// JobStore is the job persistence used by the services.
// *repository.JobRepository implements it.
type JobStore interface {
	CreateJob(ctx context.Context, in model.NewJob) (*model.Job, error)
	FindJobByID(ctx context.Context, id int64) (*model.JobListing, error)
	ListJobsByCompany(ctx context.Context, companyID int64) ([]model.JobListing, error)
	ListLatestJobs(ctx context.Context, limit int) ([]model.JobListing, error)
	ListEmploymentTypes(ctx context.Context) ([]model.EmploymentType, error)
	ListDepartments(ctx context.Context) ([]model.Department, error)
}

// SessionStore issues and revokes session tokens. *session.Store implements it.
type SessionStore interface {
	Create(ctx context.Context, companyID int64) (string, error)
	Destroy(ctx context.Context, token string) error
}

// Mailer sends the welcome email. *email.Client implements it.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, to, companyName string) error
}

// LogoStore keeps logo files. *storage.LogoStore implements it.
type LogoStore interface {
	Save(companyID int64, r io.Reader) (string, error)
	Open(name string) ([]byte, string, error)
	Remove(name string) error
}

const (
	forbiddenMessage = "You cannot do that!"

	MsgRequiredInformation = "Please enter required information."
)

// requiredField points at a value that must not be blank.
type requiredField struct {
	name  string
	value *string
}

// requireFields trims every field in place and fails with a 400 listing
// those left empty.
func requireFields(fields ...requiredField) error {
	var missing []errs.FieldError

	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			missing = append(missing, errs.FieldError{Field: f.name, Error: "is required"})
		}
	}

	if len(missing) > 0 {
		return errs.NewBadRequestError(MsgRequiredInformation, true, nil, missing, nil)
	}
	return nil
}
