package handler

import (
	"context"
	"time"

	"github.com/deppfellow/job-board/internal/model"
	"github.com/deppfellow/job-board/internal/server"
	"github.com/deppfellow/job-board/internal/validation"
	"github.com/labstack/echo/v4"
)

// DateLayout is the wire format of job dates.
const DateLayout = "2006-01-02"

// JobService is the part of *service.JobService the job routes use.
type JobService interface {
	Create(ctx context.Context, companyID int64, in model.NewJob) (*model.Job, error)
	ListByCompany(ctx context.Context, companyID int64) ([]model.JobListing, error)
	ListLatest(ctx context.Context, limit int) ([]model.JobListing, error)
	Get(ctx context.Context, id int64) (*model.JobListing, error)
	ListEmploymentTypes(ctx context.Context) ([]model.EmploymentType, error)
	ListDepartments(ctx context.Context) ([]model.Department, error)
}

type JobHandler struct {
	Handler
	jobs JobService
}

func NewJobHandler(s *server.Server, jobs JobService) *JobHandler {
	return &JobHandler{
		Handler: NewHandler(s),
		jobs:    jobs,
	}
}

// LatestJobsRequest carries the optional ?limit= of the job feed. Zero
// selects the default page size.
type LatestJobsRequest struct {
	Limit int `query:"limit" json:"limit" validate:"min=0"`
}

func (r *LatestJobsRequest) Validate() error {
	return validation.Struct(r)
}

type JobIDRequest struct {
	ID int64 `param:"id" json:"-" validate:"min=1"`
}

func (r *JobIDRequest) Validate() error {
	return validation.Struct(r)
}

type CreateJobRequest struct {
	CompanyID        int64   `param:"id" json:"-" validate:"min=1"`
	Title            string  `json:"title" validate:"required,notblank,max=255"`
	Location         string  `json:"location" validate:"required,notblank,max=255"`
	RoleOverview     string  `json:"roleOverview" validate:"required,notblank,max=5000"`
	Responsibilities string  `json:"responsibilities" validate:"required,notblank,max=5000"`
	Requirements     string  `json:"requirements" validate:"required,notblank,max=5000"`
	NiceToHaves      *string `json:"niceToHaves" validate:"omitempty,max=5000"`
	Benefits         *string `json:"benefits" validate:"omitempty,max=5000"`
	PayRange         *string `json:"payRange" validate:"omitempty,max=255"`
	ClosingDate      string  `json:"closingDate" validate:"omitempty,datetime=2006-01-02"`
	EmploymentType   string  `json:"employmentType" validate:"required,notblank,max=255"`
	Department       string  `json:"department" validate:"required,notblank,max=255"`
}

func (r *CreateJobRequest) Validate() error {
	return validation.Struct(r)
}

// NewJob converts the request into the service input. Validate must have
// passed, so ClosingDate is empty or well formed.
func (r *CreateJobRequest) NewJob() model.NewJob {
	job := model.NewJob{
		Title:            r.Title,
		Location:         r.Location,
		RoleOverview:     r.RoleOverview,
		Responsibilities: r.Responsibilities,
		Requirements:     r.Requirements,
		NiceToHaves:      r.NiceToHaves,
		Benefits:         r.Benefits,
		PayRange:         r.PayRange,
		EmploymentType:   r.EmploymentType,
		Department:       r.Department,
	}

	if r.ClosingDate != "" {
		if closing, err := time.Parse(DateLayout, r.ClosingDate); err == nil {
			job.ClosingDate = &closing
		}
	}

	return job
}

type ReferenceRequest struct{}

func (r *ReferenceRequest) Validate() error {
	return nil
}

func (h *JobHandler) Create(c echo.Context, req *CreateJobRequest) (*model.Job, error) {
	return h.jobs.Create(c.Request().Context(), req.CompanyID, req.NewJob())
}

func (h *JobHandler) ListByCompany(c echo.Context, req *CompanyIDRequest) ([]model.JobListing, error) {
	return h.jobs.ListByCompany(c.Request().Context(), req.ID)
}

func (h *JobHandler) ListLatest(c echo.Context, req *LatestJobsRequest) ([]model.JobListing, error) {
	return h.jobs.ListLatest(c.Request().Context(), req.Limit)
}

func (h *JobHandler) Get(c echo.Context, req *JobIDRequest) (*model.JobListing, error) {
	return h.jobs.Get(c.Request().Context(), req.ID)
}

func (h *JobHandler) ListEmploymentTypes(c echo.Context, _ *ReferenceRequest) ([]model.EmploymentType, error) {
	return h.jobs.ListEmploymentTypes(c.Request().Context())
}

func (h *JobHandler) ListDepartments(c echo.Context, _ *ReferenceRequest) ([]model.Department, error) {
	return h.jobs.ListDepartments(c.Request().Context())
}
