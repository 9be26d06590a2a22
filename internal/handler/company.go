package handler

import (
	"context"
	"fmt"
	"io"

	"github.com/deppfellow/job-board/internal/errs"
	"github.com/deppfellow/job-board/internal/model"
	"github.com/deppfellow/job-board/internal/server"
	"github.com/deppfellow/job-board/internal/service"
	"github.com/deppfellow/job-board/internal/validation"
	"github.com/labstack/echo/v4"
)

// LogoFormField is the multipart field a logo upload is read from.
const LogoFormField = "logo"

// CompanyService is the part of *service.CompanyService the company routes
// use.
type CompanyService interface {
	List(ctx context.Context) ([]model.Company, error)
	Get(ctx context.Context, id int64) (*model.Company, error)
	Dashboard(ctx context.Context, id int64) (*service.Dashboard, error)
	UpdateProfile(ctx context.Context, id int64, profile model.CompanyProfile) (*model.Company, error)
	UpdateLogo(ctx context.Context, id int64, r io.Reader) (*model.Company, error)
	Logo(ctx context.Context, id int64) ([]byte, string, error)
}

type CompanyHandler struct {
	Handler
	companies CompanyService
}

func NewCompanyHandler(s *server.Server, companies CompanyService) *CompanyHandler {
	return &CompanyHandler{
		Handler:   NewHandler(s),
		companies: companies,
	}
}

type ListCompaniesRequest struct{}

func (r *ListCompaniesRequest) Validate() error {
	return nil
}

// CompanyIDRequest addresses a company by the :id path segment.
type CompanyIDRequest struct {
	ID int64 `param:"id" json:"-" validate:"min=1"`
}

func (r *CompanyIDRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateProfileRequest struct {
	ID          int64  `param:"id" json:"-" validate:"min=1"`
	Name        string `json:"name" validate:"required,notblank,max=255"`
	Location    string `json:"location" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validation.Struct(r)
}

func (h *CompanyHandler) List(c echo.Context, _ *ListCompaniesRequest) ([]model.Company, error) {
	return h.companies.List(c.Request().Context())
}

func (h *CompanyHandler) Get(c echo.Context, req *CompanyIDRequest) (*model.Company, error) {
	return h.companies.Get(c.Request().Context(), req.ID)
}

func (h *CompanyHandler) Dashboard(c echo.Context, req *CompanyIDRequest) (*service.Dashboard, error) {
	return h.companies.Dashboard(c.Request().Context(), req.ID)
}

func (h *CompanyHandler) UpdateProfile(c echo.Context, req *UpdateProfileRequest) (*CompanyResponse, error) {
	company, err := h.companies.UpdateProfile(c.Request().Context(), req.ID, model.CompanyProfile{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	return &CompanyResponse{Message: service.MsgProfileUpdated, Company: company}, nil
}

// UpdateLogo reads the "logo" multipart file and stores it as the company
// logo. Size and type are checked by the service.
func (h *CompanyHandler) UpdateLogo(c echo.Context, req *CompanyIDRequest) (*CompanyResponse, error) {
	header, err := c.FormFile(LogoFormField)
	if err != nil {
		return nil, errs.NewBadRequestError(service.MsgChangesNotSaved+" Please choose a logo to upload.", true, nil,
			[]errs.FieldError{{Field: LogoFormField, Error: "is required"}}, nil)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded logo: %w", err)
	}
	defer file.Close()

	company, err := h.companies.UpdateLogo(c.Request().Context(), req.ID, file)
	if err != nil {
		return nil, err
	}

	return &CompanyResponse{Message: service.MsgProfileUpdated, Company: company}, nil
}

func (h *CompanyHandler) Logo(c echo.Context, req *CompanyIDRequest) (Blob, error) {
	data, contentType, err := h.companies.Logo(c.Request().Context(), req.ID)
	if err != nil {
		return Blob{}, err
	}
	return Blob{Data: data, ContentType: contentType}, nil
}
