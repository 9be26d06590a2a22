package router

import (
	"net/http"

	"github.com/deppfellow/job-board/internal/handler"
	"github.com/deppfellow/job-board/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Credential endpoints are throttled per client IP.
const (
	signupPerMinute = 5
	signupBurst     = 3
	signinPerMinute = 10
	signinBurst     = 5
)

func registerAuthRoutes(v1 *echo.Group, h *handler.Handlers, mws *middleware.Middlewares) {
	a := h.Auth
	g := v1.Group("/auth")

	g.POST("/signup",
		handler.Handle(a.Handler, a.Signup, http.StatusCreated, &handler.SignupRequest{}),
		mws.RateLimit.Limit("signup", signupPerMinute, signupBurst),
	)
	g.POST("/signin",
		handler.Handle(a.Handler, a.Signin, http.StatusOK, &handler.SigninRequest{}),
		mws.RateLimit.Limit("signin", signinPerMinute, signinBurst),
	)
	g.POST("/signout", handler.HandleNoContent(a.Handler, a.Signout, http.StatusNoContent, &handler.SignoutRequest{}))
	g.GET("/availability", handler.Handle(a.Handler, a.Availability, http.StatusOK, &handler.AvailabilityRequest{}))
}

func registerJobRoutes(v1 *echo.Group, h *handler.Handlers) {
	j := h.Job

	v1.GET("/jobs", handler.Handle(j.Handler, j.ListLatest, http.StatusOK, &handler.LatestJobsRequest{}))
	v1.GET("/jobs/:id", handler.Handle(j.Handler, j.Get, http.StatusOK, &handler.JobIDRequest{}))
	v1.GET("/employment-types", handler.Handle(j.Handler, j.ListEmploymentTypes, http.StatusOK, &handler.ReferenceRequest{}))
	v1.GET("/departments", handler.Handle(j.Handler, j.ListDepartments, http.StatusOK, &handler.ReferenceRequest{}))
}

// registerCompanyRoutes registers the public company pages and the routes
// a signed-in company uses on itself. Ownership of :id is checked by the
// services; RequireAuth only turns anonymous callers away early.
func registerCompanyRoutes(v1 *echo.Group, h *handler.Handlers, mws *middleware.Middlewares) {
	c := h.Company
	j := h.Job
	g := v1.Group("/companies")

	g.GET("", handler.Handle(c.Handler, c.List, http.StatusOK, &handler.ListCompaniesRequest{}))
	g.GET("/:id", handler.Handle(c.Handler, c.Get, http.StatusOK, &handler.CompanyIDRequest{}))
	g.GET("/:id/logo", handler.HandleBlob(c.Handler, c.Logo, http.StatusOK, &handler.CompanyIDRequest{}))
	g.GET("/:id/jobs", handler.Handle(j.Handler, j.ListByCompany, http.StatusOK, &handler.CompanyIDRequest{}))

	requireAuth := mws.Auth.RequireAuth
	g.GET("/:id/dashboard", handler.Handle(c.Handler, c.Dashboard, http.StatusOK, &handler.CompanyIDRequest{}), requireAuth)
	g.PUT("/:id/profile", handler.Handle(c.Handler, c.UpdateProfile, http.StatusOK, &handler.UpdateProfileRequest{}), requireAuth)
	g.PUT("/:id/logo", handler.Handle(c.Handler, c.UpdateLogo, http.StatusOK, &handler.CompanyIDRequest{}), requireAuth)
	g.POST("/:id/jobs", handler.Handle(j.Handler, j.Create, http.StatusCreated, &handler.CreateJobRequest{}), requireAuth)
}
