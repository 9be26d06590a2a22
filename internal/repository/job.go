package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/job-board/internal/database"
	"github.com/deppfellow/job-board/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, title, location, role_overview, responsibilities, requirements,
	nice_to_haves, benefits, pay_range, posted_date, closing_date, company_id`

// listingQuery selects jobs with their company name and aggregated labels.
// Callers append a WHERE clause, the grouping and the ordering.
const listingQuery = `
	SELECT j.id, j.title, j.location, j.role_overview, j.responsibilities, j.requirements,
	       j.nice_to_haves, j.benefits, j.pay_range, j.posted_date, j.closing_date, j.company_id,
	       c.name AS company_name,
	       COALESCE(array_agg(DISTINCT et.label) FILTER (WHERE et.label IS NOT NULL), '{}') AS employment_types,
	       COALESCE(array_agg(DISTINCT d.label) FILTER (WHERE d.label IS NOT NULL), '{}') AS departments
	FROM jobs j
	JOIN companies c ON c.id = j.company_id
	LEFT JOIN employment_types_jobs etj ON etj.job_id = j.id
	LEFT JOIN employment_types et ON et.id = etj.employment_type_id
	LEFT JOIN departments_jobs dj ON dj.job_id = j.id
	LEFT JOIN departments d ON d.id = dj.department_id`

const listingGroupOrder = `
	GROUP BY j.id, c.name
	ORDER BY j.posted_date DESC, j.id DESC`

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

// CreateJob inserts a job and links it to one employment type and one
// department, all in one transaction. An unknown label returns a
// *ReferenceError and nothing is written.
func (r *JobRepository) CreateJob(ctx context.Context, in model.NewJob) (*model.Job, error) {
	var job *model.Job

	err := database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		employmentTypeID, err := lookupLabel(ctx, tx, "employment_types", in.EmploymentType)
		if err != nil {
			return err
		}

		departmentID, err := lookupLabel(ctx, tx, "departments", in.Department)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `
			INSERT INTO jobs (title, location, role_overview, responsibilities, requirements,
			                  nice_to_haves, benefits, pay_range, closing_date, company_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING `+jobColumns,
			in.Title, in.Location, in.RoleOverview, in.Responsibilities, in.Requirements,
			in.NiceToHaves, in.Benefits, in.PayRange, in.ClosingDate, in.CompanyID,
		)
		if err != nil {
			return err
		}

		job, err = pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Job])
		if err != nil {
			return translateError(err, "jobs")
		}

		if err := linkEmploymentType(ctx, tx, employmentTypeID, job.ID); err != nil {
			return err
		}
		return linkDepartment(ctx, tx, departmentID, job.ID)
	})
	if err != nil {
		var refErr *ReferenceError
		var conflict *ConflictError
		if errors.As(err, &refErr) || errors.As(err, &conflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create job: %w", err)
	}

	return job, nil
}

// lookupLabel resolves a reference-table label to its id. table is always a
// constant supplied by this package.
func lookupLabel(ctx context.Context, q database.Querier, table, label string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `SELECT id FROM `+table+` WHERE label = $1`, label).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &ReferenceError{Table: table, Label: label}
	}
	return id, err
}

// LinkEmploymentType adds an employment type to a job. Linking the same
// pair twice returns a *ConflictError.
func (r *JobRepository) LinkEmploymentType(ctx context.Context, employmentTypeID, jobID int64) error {
	return database.WithConn(ctx, r.pool, func(q database.Querier) error {
		return linkEmploymentType(ctx, q, employmentTypeID, jobID)
	})
}

// LinkDepartment adds a department to a job. Linking the same pair twice
// returns a *ConflictError.
func (r *JobRepository) LinkDepartment(ctx context.Context, departmentID, jobID int64) error {
	return database.WithConn(ctx, r.pool, func(q database.Querier) error {
		return linkDepartment(ctx, q, departmentID, jobID)
	})
}

func linkEmploymentType(ctx context.Context, q database.Querier, employmentTypeID, jobID int64) error {
	_, err := q.Exec(ctx,
		`INSERT INTO employment_types_jobs (employment_type_id, job_id) VALUES ($1, $2)`,
		employmentTypeID, jobID,
	)
	return translateError(err, "employment_types_jobs")
}

func linkDepartment(ctx context.Context, q database.Querier, departmentID, jobID int64) error {
	_, err := q.Exec(ctx,
		`INSERT INTO departments_jobs (department_id, job_id) VALUES ($1, $2)`,
		departmentID, jobID,
	)
	return translateError(err, "departments_jobs")
}

func (r *JobRepository) FindJobByID(ctx context.Context, id int64) (*model.JobListing, error) {
	var listing *model.JobListing

	err := database.WithConn(ctx, r.pool, func(q database.Querier) error {
		rows, err := q.Query(ctx, listingQuery+` WHERE j.id = $1`+listingGroupOrder, id)
		if err != nil {
			return err
		}

		listing, err = pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.JobListing])
		return err
	})
	if err != nil {
		return nil, translateError(err, "jobs")
	}

	return listing, nil
}

// ListJobsByCompany returns a company's jobs, newest first.
func (r *JobRepository) ListJobsByCompany(ctx context.Context, companyID int64) ([]model.JobListing, error) {
	return r.listListings(ctx, listingQuery+` WHERE j.company_id = $1`+listingGroupOrder, companyID)
}

// ListLatestJobs returns the most recently posted jobs across all companies.
func (r *JobRepository) ListLatestJobs(ctx context.Context, limit int) ([]model.JobListing, error) {
	return r.listListings(ctx, listingQuery+listingGroupOrder+` LIMIT $1`, limit)
}

func (r *JobRepository) listListings(ctx context.Context, sql string, args ...any) ([]model.JobListing, error) {
	var listings []model.JobListing

	err := database.WithConn(ctx, r.pool, func(q database.Querier) error {
		rows, err := q.Query(ctx, sql, args...)
		if err != nil {
			return err
		}

		listings, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.JobListing])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	return listings, nil
}

// ListEmploymentTypes returns the employment types ordered by label.
func (r *JobRepository) ListEmploymentTypes(ctx context.Context) ([]model.EmploymentType, error) {
	var types []model.EmploymentType

	err := database.WithConn(ctx, r.pool, func(q database.Querier) error {
		rows, err := q.Query(ctx, `SELECT id, label FROM employment_types ORDER BY label`)
		if err != nil {
			return err
		}

		types, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.EmploymentType])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list employment types: %w", err)
	}

	return types, nil
}

// ListDepartments returns the departments ordered by label.
func (r *JobRepository) ListDepartments(ctx context.Context) ([]model.Department, error) {
	var departments []model.Department

	err := database.WithConn(ctx, r.pool, func(q database.Querier) error {
		rows, err := q.Query(ctx, `SELECT id, label FROM departments ORDER BY label`)
		if err != nil {
			return err
		}

		departments, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Department])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}

	return departments, nil
}
