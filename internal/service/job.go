package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/job-board/internal/errs"
	"github.com/deppfellow/job-board/internal/lib/utils"
	"github.com/deppfellow/job-board/internal/model"
	"github.com/deppfellow/job-board/internal/repository"
	"github.com/rs/zerolog"
)

const (
	DefaultLatestJobs = 10
	MaxLatestJobs     = 50
)

type JobService struct {
	companies CompanyStore
	jobs      JobStore
	now       func() time.Time
}

func NewJobService(companies CompanyStore, jobs JobStore) *JobService {
	return &JobService{
		companies: companies,
		jobs:      jobs,
		now:       time.Now,
	}
}

// Create posts a job for the signed-in company.
func (s *JobService) Create(ctx context.Context, companyID int64, in model.NewJob) (*model.Job, error) {
	if err := requireOwner(ctx, companyID); err != nil {
		return nil, err
	}

	if err := requireFields(
		requiredField{"title", &in.Title},
		requiredField{"location", &in.Location},
		requiredField{"roleOverview", &in.RoleOverview},
		requiredField{"responsibilities", &in.Responsibilities},
		requiredField{"requirements", &in.Requirements},
		requiredField{"employmentType", &in.EmploymentType},
		requiredField{"department", &in.Department},
	); err != nil {
		return nil, err
	}

	if in.ClosingDate != nil {
		today := s.now().UTC().Truncate(24 * time.Hour)
		if in.ClosingDate.Before(today) {
			return nil, errs.NewBadRequestError("Validation failed", true, nil,
				[]errs.FieldError{{Field: "closingDate", Error: "must not be in the past"}}, nil)
		}
	}

	in.CompanyID = companyID
	in.NiceToHaves = utils.NilIfBlank(in.NiceToHaves)
	in.Benefits = utils.NilIfBlank(in.Benefits)
	in.PayRange = utils.NilIfBlank(in.PayRange)

	job, err := s.jobs.CreateJob(ctx, in)
	if err != nil {
		return nil, createJobError(err)
	}

	zerolog.Ctx(ctx).Info().
		Int64("company_id", companyID).
		Int64("job_id", job.ID).
		Msg("job posted")

	return job, nil
}

func createJobError(err error) error {
	var refErr *repository.ReferenceError
	if !errors.As(err, &refErr) {
		return err
	}

	field := "employmentType"
	if refErr.Table == "departments" {
		field = "department"
	}

	code := "UNKNOWN_REFERENCE"
	return errs.NewBadRequestError("Validation failed", true, &code,
		[]errs.FieldError{{Field: field, Error: "is not a known option: " + refErr.Label}}, nil)
}

// ListByCompany returns a company's jobs, newest first.
func (s *JobService) ListByCompany(ctx context.Context, companyID int64) ([]model.JobListing, error) {
	if _, err := s.companies.FindCompanyByID(ctx, companyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, companyNotFound()
		}
		return nil, err
	}

	return s.jobs.ListJobsByCompany(ctx, companyID)
}

// ListLatest returns the newest jobs across all companies. limit is clamped
// to [1, MaxLatestJobs]; zero means DefaultLatestJobs.
func (s *JobService) ListLatest(ctx context.Context, limit int) ([]model.JobListing, error) {
	switch {
	case limit <= 0:
		limit = DefaultLatestJobs
	case limit > MaxLatestJobs:
		limit = MaxLatestJobs
	}

	return s.jobs.ListLatestJobs(ctx, limit)
}

func (s *JobService) Get(ctx context.Context, id int64) (*model.JobListing, error) {
	job, err := s.jobs.FindJobByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		code := "JOB_NOT_FOUND"
		return nil, errs.NewNotFoundError("Job not found", true, &code)
	}
	return job, err
}

func (s *JobService) ListEmploymentTypes(ctx context.Context) ([]model.EmploymentType, error) {
	return s.jobs.ListEmploymentTypes(ctx)
}

func (s *JobService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return s.jobs.ListDepartments(ctx)
}
