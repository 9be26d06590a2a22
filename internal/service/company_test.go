package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/deppfellow/job-board/internal/model"
	"github.com/deppfellow/job-board/internal/service"
)

type companyFixture struct {
	svc       *service.CompanyService
	companies *fakeCompanies
	jobs      *fakeJobs
	logos     *fakeLogos
	acme      *model.Company
	globex    *model.Company
}

func newCompanyFixture(t *testing.T) *companyFixture {
	t.Helper()

	f := &companyFixture{
		companies: newFakeCompanies(),
		jobs:      newFakeJobs(),
		logos:     newFakeLogos(),
	}
	f.svc = service.NewCompanyService(f.companies, f.jobs, f.logos)

	var err error
	ctx := context.Background()
	if f.acme, err = f.companies.CreateCompany(ctx, model.NewCompany{Name: "Acme", Email: "a@acme.com"}); err != nil {
		t.Fatal(err)
	}
	if f.globex, err = f.companies.CreateCompany(ctx, model.NewCompany{Name: "Globex", Email: "hr@globex.com"}); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestCompanyService_Get(t *testing.T) {
	f := newCompanyFixture(t)

	got, err := f.svc.Get(context.Background(), f.acme.ID)
	if err != nil || got.Name != "Acme" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	_, err = f.svc.Get(context.Background(), 999)
	requireHTTPError(t, err, http.StatusNotFound)
}

func TestCompanyService_DashboardOwnership(t *testing.T) {
	f := newCompanyFixture(t)

	_, err := f.svc.Dashboard(context.Background(), f.acme.ID)
	requireHTTPError(t, err, http.StatusUnauthorized)

	_, err = f.svc.Dashboard(signedIn(f.globex.ID), f.acme.ID)
	httpErr := requireHTTPError(t, err, http.StatusForbidden)
	if httpErr.Message != "You cannot do that!" {
		t.Errorf("Message = %q", httpErr.Message)
	}

	dash, err := f.svc.Dashboard(signedIn(f.acme.ID), f.acme.ID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.Company.ID != f.acme.ID {
		t.Errorf("dashboard of %d, want %d", dash.Company.ID, f.acme.ID)
	}
}

func TestCompanyService_UpdateProfile(t *testing.T) {
	f := newCompanyFixture(t)
	ctx := signedIn(f.acme.ID)

	updated, err := f.svc.UpdateProfile(ctx, f.acme.ID, model.CompanyProfile{
		Name: " Acme Corp ", Location: "Houston, TX", Description: "testing... testing...",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Acme Corp" || updated.Location != "Houston, TX" {
		t.Errorf("updated = %+v", updated)
	}

	_, err = f.svc.UpdateProfile(ctx, f.acme.ID, model.CompanyProfile{Name: "Globex", Location: "Springfield"})
	httpErr := requireHTTPError(t, err, http.StatusConflict)
	if !strings.HasPrefix(httpErr.Message, service.MsgChangesNotSaved) {
		t.Errorf("Message = %q", httpErr.Message)
	}

	_, err = f.svc.UpdateProfile(ctx, f.globex.ID, model.CompanyProfile{Name: "Mine now"})
	requireHTTPError(t, err, http.StatusForbidden)

	_, err = f.svc.UpdateProfile(ctx, f.acme.ID, model.CompanyProfile{Name: " \t", Location: "Houston, TX"})
	httpErr = requireHTTPError(t, err, http.StatusBadRequest)
	if httpErr.Message != service.MsgRequiredInformation || len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "name" {
		t.Errorf("blank name: %q %+v", httpErr.Message, httpErr.Errors)
	}
}

func TestCompanyService_UpdateLogo(t *testing.T) {
	f := newCompanyFixture(t)
	ctx := signedIn(f.acme.ID)

	first, err := f.svc.UpdateLogo(ctx, f.acme.ID, strings.NewReader("PNG one"))
	if err != nil {
		t.Fatalf("UpdateLogo: %v", err)
	}
	if first.Logo == nil {
		t.Fatal("logo not recorded")
	}
	firstName := *first.Logo

	second, err := f.svc.UpdateLogo(ctx, f.acme.ID, strings.NewReader("PNG two"))
	if err != nil {
		t.Fatalf("second UpdateLogo: %v", err)
	}
	if _, ok := f.logos.files[firstName]; ok {
		t.Error("replaced logo was not removed")
	}

	data, contentType, err := f.svc.Logo(context.Background(), f.acme.ID)
	if err != nil {
		t.Fatalf("Logo: %v", err)
	}
	if string(data) != "PNG two" || contentType != "image/png" {
		t.Errorf("Logo = %q, %q", data, contentType)
	}
	if *second.Logo == firstName {
		t.Error("second upload reused the first file name")
	}

	_, err = f.svc.UpdateLogo(ctx, f.acme.ID, strings.NewReader("GIF89a"))
	requireHTTPError(t, err, http.StatusBadRequest)

	_, err = f.svc.UpdateLogo(signedIn(f.globex.ID), f.acme.ID, strings.NewReader("PNG"))
	requireHTTPError(t, err, http.StatusForbidden)
}

func TestCompanyService_LogoMissing(t *testing.T) {
	f := newCompanyFixture(t)

	_, _, err := f.svc.Logo(context.Background(), f.globex.ID)
	requireHTTPError(t, err, http.StatusNotFound)
}
