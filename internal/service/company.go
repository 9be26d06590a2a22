package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/deppfellow/job-board/internal/errs"
	"github.com/deppfellow/job-board/internal/lib/storage"
	"github.com/deppfellow/job-board/internal/model"
	"github.com/deppfellow/job-board/internal/repository"
	"github.com/rs/zerolog"
)

const (
	MsgProfileUpdated  = "Profile updated successfully!"
	MsgChangesNotSaved = "Changes NOT saved."
)

type CompanyService struct {
	companies CompanyStore
	jobs      JobStore
	logos     LogoStore
}

func NewCompanyService(companies CompanyStore, jobs JobStore, logos LogoStore) *CompanyService {
	return &CompanyService{
		companies: companies,
		jobs:      jobs,
		logos:     logos,
	}
}

func companyNotFound() error {
	code := "COMPANY_NOT_FOUND"
	return errs.NewNotFoundError("Company not found", true, &code)
}

func (s *CompanyService) List(ctx context.Context) ([]model.Company, error) {
	return s.companies.ListCompanies(ctx)
}

func (s *CompanyService) Get(ctx context.Context, id int64) (*model.Company, error) {
	company, err := s.companies.FindCompanyByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, companyNotFound()
	}
	return company, err
}

// Dashboard is what a signed-in company sees about itself.
type Dashboard struct {
	Company *model.Company     `json:"company"`
	Jobs    []model.JobListing `json:"jobs"`
}

// Dashboard returns the company with its jobs. Only the company itself may
// open it.
func (s *CompanyService) Dashboard(ctx context.Context, id int64) (*Dashboard, error) {
	if err := requireOwner(ctx, id); err != nil {
		return nil, err
	}

	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListJobsByCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Dashboard{Company: company, Jobs: jobs}, nil
}

// UpdateProfile overwrites name, location and description of the signed-in
// company.
func (s *CompanyService) UpdateProfile(ctx context.Context, id int64, profile model.CompanyProfile) (*model.Company, error) {
	if err := requireOwner(ctx, id); err != nil {
		return nil, err
	}

	if err := requireFields(
		requiredField{"name", &profile.Name},
		requiredField{"location", &profile.Location},
	); err != nil {
		return nil, err
	}
	profile.Description = strings.TrimSpace(profile.Description)

	company, err := s.companies.UpdateCompanyProfile(ctx, id, profile)
	if err != nil {
		return nil, profileError(err)
	}

	zerolog.Ctx(ctx).Info().Int64("company_id", id).Msg("company profile updated")

	return company, nil
}

func profileError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return companyNotFound()
	}

	var conflict *repository.ConflictError
	if errors.As(err, &conflict) {
		code := "COMPANY_ALREADY_EXISTS"
		return errs.NewConflictError(
			MsgChangesNotSaved+" An account with that company name already exists.",
			true, &code,
			[]errs.FieldError{{Field: conflict.Field, Error: "already exists"}},
		)
	}

	return err
}

// UpdateLogo stores a new logo for the signed-in company and points the
// company at it. The previous file is removed once the row is updated.
func (s *CompanyService) UpdateLogo(ctx context.Context, id int64, r io.Reader) (*model.Company, error) {
	if err := requireOwner(ctx, id); err != nil {
		return nil, err
	}

	previous, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := s.logos.Save(id, r)
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return nil, errs.NewRequestEntityTooLargeError(MsgChangesNotSaved + " The logo file is too large.")
	case errors.Is(err, storage.ErrUnsupportedType):
		return nil, errs.NewBadRequestError(MsgChangesNotSaved+" The logo must be a PNG or JPEG image.", true, nil,
			[]errs.FieldError{{Field: "logo", Error: "must be a PNG or JPEG image"}}, nil)
	case err != nil:
		return nil, err
	}

	logger := zerolog.Ctx(ctx)

	company, err := s.companies.UpdateCompanyLogo(ctx, id, name)
	if err != nil {
		if rmErr := s.logos.Remove(name); rmErr != nil {
			logger.Warn().Err(rmErr).Str("logo", name).Msg("failed to remove orphaned logo")
		}
		return nil, profileError(err)
	}

	if previous.Logo != nil && *previous.Logo != name {
		if err := s.logos.Remove(*previous.Logo); err != nil {
			logger.Warn().Err(err).Str("logo", *previous.Logo).Msg("failed to remove replaced logo")
		}
	}

	logger.Info().Int64("company_id", id).Str("logo", name).Msg("company logo updated")

	return company, nil
}

// Logo returns a company's logo bytes and media type.
func (s *CompanyService) Logo(ctx context.Context, id int64) ([]byte, string, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	code := "LOGO_NOT_FOUND"
	if company.Logo == nil {
		return nil, "", errs.NewNotFoundError("This company has not uploaded a logo", true, &code)
	}

	data, contentType, err := s.logos.Open(*company.Logo)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", errs.NewNotFoundError("This company has not uploaded a logo", true, &code)
	}
	if err != nil {
		return nil, "", fmt.Errorf("open logo of company %d: %w", id, err)
	}

	return data, contentType, nil
}
