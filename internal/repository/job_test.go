package repository_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/deppfellow/job-board/internal/model"
	"github.com/deppfellow/job-board/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

func seedCompany(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()

	c, err := repository.NewCompanyRepository(pool).CreateCompany(context.Background(), acme)
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return c.ID
}

func newJob(companyID int64) model.NewJob {
	return model.NewJob{
		Title:            "Backend Engineer",
		Location:         "Remote",
		RoleOverview:     "Build APIs",
		Responsibilities: "Ship code",
		Requirements:     "Go",
		CompanyID:        companyID,
		EmploymentType:   "Full-time",
		Department:       "Engineering",
	}
}

func TestJobRepository_CreateAndList(t *testing.T) {
	pool := newTestPool(t)
	repo := repository.NewJobRepository(pool)
	ctx := context.Background()
	companyID := seedCompany(t, pool)

	job, err := repo.CreateJob(ctx, newJob(companyID))
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.PostedDate.IsZero() {
		t.Error("PostedDate was not defaulted")
	}

	listings, err := repo.ListJobsByCompany(ctx, companyID)
	if err != nil {
		t.Fatalf("ListJobsByCompany: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("got %d listings, want 1", len(listings))
	}

	got := listings[0]
	if got.ID != job.ID || got.CompanyName != "Acme" {
		t.Errorf("listing = %+v", got)
	}
	if !slices.Equal(got.EmploymentTypes, []string{"Full-time"}) {
		t.Errorf("EmploymentTypes = %v", got.EmploymentTypes)
	}
	if !slices.Equal(got.Departments, []string{"Engineering"}) {
		t.Errorf("Departments = %v", got.Departments)
	}

	latest, err := repo.ListLatestJobs(ctx, 10)
	if err != nil {
		t.Fatalf("ListLatestJobs: %v", err)
	}
	if len(latest) != 1 || latest[0].ID != job.ID {
		t.Errorf("ListLatestJobs = %+v", latest)
	}

	found, err := repo.FindJobByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("FindJobByID: %v", err)
	}
	if found.Title != "Backend Engineer" {
		t.Errorf("FindJobByID title = %q", found.Title)
	}
}

func TestJobRepository_CreateUnknownLabelWritesNothing(t *testing.T) {
	pool := newTestPool(t)
	repo := repository.NewJobRepository(pool)
	companyID := seedCompany(t, pool)

	tests := []struct {
		name      string
		mutate    func(*model.NewJob)
		wantTable string
	}{
		{"employment type", func(j *model.NewJob) { j.EmploymentType = "Freelance" }, "employment_types"},
		{"department", func(j *model.NewJob) { j.Department = "Alchemy" }, "departments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newJob(companyID)
			tt.mutate(&in)

			_, err := repo.CreateJob(context.Background(), in)

			var refErr *repository.ReferenceError
			if !errors.As(err, &refErr) {
				t.Fatalf("err = %v, want *ReferenceError", err)
			}
			if refErr.Table != tt.wantTable {
				t.Errorf("Table = %q, want %q", refErr.Table, tt.wantTable)
			}

			for _, table := range []string{"jobs", "employment_types_jobs", "departments_jobs"} {
				if n := countRows(t, pool, table); n != 0 {
					t.Errorf("%s has %d rows, want 0", table, n)
				}
			}
		})
	}
}

// A failure on the last statement of CreateJob must take the job row and
// the employment type link with it.
func TestJobRepository_CreateRollsBackAfterJobInsert(t *testing.T) {
	pool := newTestPool(t)
	repo := repository.NewJobRepository(pool)
	ctx := context.Background()
	companyID := seedCompany(t, pool)

	if _, err := pool.Exec(ctx, `
		CREATE OR REPLACE FUNCTION reject_department_link() RETURNS trigger AS $$
		BEGIN
			RAISE EXCEPTION 'department links are disabled';
		END;
		$$ LANGUAGE plpgsql;

		CREATE TRIGGER reject_department_link
			BEFORE INSERT ON departments_jobs
			FOR EACH ROW EXECUTE FUNCTION reject_department_link();
	`); err != nil {
		t.Fatalf("install trigger: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `
			DROP TRIGGER IF EXISTS reject_department_link ON departments_jobs;
			DROP FUNCTION IF EXISTS reject_department_link();
		`)
	})

	if _, err := repo.CreateJob(ctx, newJob(companyID)); err == nil {
		t.Fatal("CreateJob succeeded with department links disabled")
	}

	for _, table := range []string{"jobs", "employment_types_jobs", "departments_jobs"} {
		if n := countRows(t, pool, table); n != 0 {
			t.Errorf("%s has %d rows, want 0", table, n)
		}
	}
}

func TestJobRepository_LinkTwiceConflicts(t *testing.T) {
	pool := newTestPool(t)
	repo := repository.NewJobRepository(pool)
	ctx := context.Background()

	job, err := repo.CreateJob(ctx, newJob(seedCompany(t, pool)))
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	types, err := repo.ListEmploymentTypes(ctx)
	if err != nil {
		t.Fatalf("ListEmploymentTypes: %v", err)
	}
	departments, err := repo.ListDepartments(ctx)
	if err != nil {
		t.Fatalf("ListDepartments: %v", err)
	}

	fullTime := findLabel(t, types, "Full-time")
	engineering := findDepartment(t, departments, "Engineering")

	// CreateJob already linked both pairs.
	if err := repo.LinkEmploymentType(ctx, fullTime, job.ID); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("LinkEmploymentType err = %v, want ErrConflict", err)
	}
	if err := repo.LinkDepartment(ctx, engineering, job.ID); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("LinkDepartment err = %v, want ErrConflict", err)
	}

	// A different employment type is a new pair.
	partTime := findLabel(t, types, "Part-time")
	if err := repo.LinkEmploymentType(ctx, partTime, job.ID); err != nil {
		t.Errorf("LinkEmploymentType(Part-time): %v", err)
	}
}

func TestJobRepository_ReferenceListsOrdered(t *testing.T) {
	repo := repository.NewJobRepository(newTestPool(t))
	ctx := context.Background()

	types, err := repo.ListEmploymentTypes(ctx)
	if err != nil {
		t.Fatalf("ListEmploymentTypes: %v", err)
	}
	if !slices.IsSortedFunc(types, func(a, b model.EmploymentType) int { return strings.Compare(a.Label, b.Label) }) {
		t.Errorf("employment types not ordered by label: %v", types)
	}

	departments, err := repo.ListDepartments(ctx)
	if err != nil {
		t.Fatalf("ListDepartments: %v", err)
	}
	if len(departments) == 0 {
		t.Fatal("no departments seeded")
	}
	if !slices.IsSortedFunc(departments, func(a, b model.Department) int { return strings.Compare(a.Label, b.Label) }) {
		t.Errorf("departments not ordered by label: %v", departments)
	}
}

func findLabel(t *testing.T, types []model.EmploymentType, label string) int64 {
	t.Helper()
	for _, et := range types {
		if et.Label == label {
			return et.ID
		}
	}
	t.Fatalf("employment type %q not seeded", label)
	return 0
}

func findDepartment(t *testing.T, departments []model.Department, label string) int64 {
	t.Helper()
	for _, d := range departments {
		if d.Label == label {
			return d.ID
		}
	}
	t.Fatalf("department %q not seeded", label)
	return 0
}
