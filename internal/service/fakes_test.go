package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/deppfellow/job-board/internal/auth"
	"github.com/deppfellow/job-board/internal/lib/storage"
	"github.com/deppfellow/job-board/internal/model"
	"github.com/deppfellow/job-board/internal/repository"
)

// fakeCompanies enforces the same unique name and email rules as the
// database constraints.
type fakeCompanies struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Company
}

func newFakeCompanies() *fakeCompanies {
	return &fakeCompanies{rows: map[int64]model.Company{}}
}

func (f *fakeCompanies) conflict(id int64, name, email string) error {
	for _, c := range f.rows {
		if c.ID == id {
			continue
		}
		if c.Email == email {
			return &repository.ConflictError{Table: "companies", Field: "email"}
		}
		if c.Name == name {
			return &repository.ConflictError{Table: "companies", Field: "name"}
		}
	}
	return nil
}

func (f *fakeCompanies) ListCompanies(context.Context) ([]model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Company, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCompanies) find(match func(model.Company) bool) (*model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.rows {
		if match(c) {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCompanies) FindCompanyByID(_ context.Context, id int64) (*model.Company, error) {
	return f.find(func(c model.Company) bool { return c.ID == id })
}

func (f *fakeCompanies) FindCompanyByName(_ context.Context, name string) (*model.Company, error) {
	return f.find(func(c model.Company) bool { return c.Name == name })
}

func (f *fakeCompanies) FindCompanyByEmail(_ context.Context, email string) (*model.Company, error) {
	return f.find(func(c model.Company) bool { return c.Email == email })
}

func (f *fakeCompanies) CreateCompany(_ context.Context, in model.NewCompany) (*model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.conflict(0, in.Name, in.Email); err != nil {
		return nil, err
	}

	f.nextID++
	c := model.Company{
		ID:          f.nextID,
		Name:        in.Name,
		Location:    in.Location,
		Email:       in.Email,
		Password:    in.PasswordHash,
		Description: in.Description,
	}
	f.rows[c.ID] = c
	return &c, nil
}

func (f *fakeCompanies) UpdateCompanyProfile(_ context.Context, id int64, p model.CompanyProfile) (*model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := f.conflict(id, p.Name, c.Email); err != nil {
		return nil, err
	}

	c.Name, c.Location, c.Description = p.Name, p.Location, p.Description
	f.rows[id] = c
	return &c, nil
}

func (f *fakeCompanies) UpdateCompanyLogo(_ context.Context, id int64, logo string) (*model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Logo = &logo
	f.rows[id] = c
	return &c, nil
}

type fakeJobs struct {
	mu       sync.Mutex
	created  []model.NewJob
	types    []model.EmploymentType
	depts    []model.Department
	listings map[int64][]model.JobListing
	limit    int
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{
		types:    []model.EmploymentType{{ID: 1, Label: "Full-time"}},
		depts:    []model.Department{{ID: 1, Label: "Engineering"}},
		listings: map[int64][]model.JobListing{},
	}
}

func (f *fakeJobs) CreateJob(_ context.Context, in model.NewJob) (*model.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if in.EmploymentType != "Full-time" {
		return nil, &repository.ReferenceError{Table: "employment_types", Label: in.EmploymentType}
	}
	if in.Department != "Engineering" {
		return nil, &repository.ReferenceError{Table: "departments", Label: in.Department}
	}

	f.created = append(f.created, in)
	job := model.Job{ID: int64(len(f.created)), Title: in.Title, CompanyID: in.CompanyID}
	f.listings[in.CompanyID] = append(f.listings[in.CompanyID], model.JobListing{Job: job})
	return &job, nil
}

func (f *fakeJobs) FindJobByID(_ context.Context, id int64) (*model.JobListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, listings := range f.listings {
		for _, l := range listings {
			if l.ID == id {
				return &l, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeJobs) ListJobsByCompany(_ context.Context, companyID int64) ([]model.JobListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listings[companyID], nil
}

func (f *fakeJobs) ListLatestJobs(_ context.Context, limit int) ([]model.JobListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = limit
	return nil, nil
}

func (f *fakeJobs) ListEmploymentTypes(context.Context) ([]model.EmploymentType, error) {
	return f.types, nil
}

func (f *fakeJobs) ListDepartments(context.Context) ([]model.Department, error) {
	return f.depts, nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]int64
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]int64{}}
}

func (f *fakeSessions) Create(_ context.Context, companyID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	token := fmt.Sprintf("token-%d-%d", companyID, len(f.sessions))
	f.sessions[token] = companyID
	return token, nil
}

func (f *fakeSessions) Destroy(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sessions, token)
	return nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendWelcomeEmail(_ context.Context, to, _ string) error {
	f.sent = append(f.sent, to)
	return f.err
}

// fakeLogos accepts anything starting with "PNG" and rejects the rest.
type fakeLogos struct {
	files   map[string][]byte
	removed []string
}

func newFakeLogos() *fakeLogos {
	return &fakeLogos{files: map[string][]byte{}}
}

func (f *fakeLogos) Save(companyID int64, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if !bytes.HasPrefix(data, []byte("PNG")) {
		return "", storage.ErrUnsupportedType
	}

	name := fmt.Sprintf("%d_%d.png", companyID, len(f.files)+len(f.removed))
	f.files[name] = data
	return name, nil
}

func (f *fakeLogos) Open(name string) ([]byte, string, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, "", storage.ErrNotFound
	}
	return data, "image/png", nil
}

func (f *fakeLogos) Remove(name string) error {
	delete(f.files, name)
	f.removed = append(f.removed, name)
	return nil
}

func signedIn(companyID int64) context.Context {
	return auth.WithPrincipal(context.Background(), auth.Principal{CompanyID: companyID})
}

var errBoom = errors.New("boom")
