package handler

import (
	"reflect"
	"time"

	"github.com/deppfellow/job-board/internal/middleware"
	"github.com/deppfellow/job-board/internal/server"
	"github.com/deppfellow/job-board/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the dependencies shared by every concrete handler.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives the bound and validated
// request and returns the response body or an error.
//
// Req is a pointer to a request struct so echo's binder can fill it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// HandlerFuncNoContent is a typed endpoint without a response body.
type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// Blob is a binary response body, e.g. a company logo.
type Blob struct {
	Data        []byte
	ContentType string
}

// ResponseHandler writes a successful result and names it for logs and
// New Relic.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result any)
}

type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result any) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

// BlobResponseHandler writes a Blob inline with its own content type.
type BlobResponseHandler struct {
	status int
}

func (h BlobResponseHandler) Handle(c echo.Context, result any) error {
	blob := result.(Blob)
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	return c.Blob(h.status, blob.ContentType, blob.Data)
}

func (h BlobResponseHandler) GetOperation() string {
	return "handler_blob"
}

func (h BlobResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	if txn == nil {
		return
	}
	if blob, ok := result.(Blob); ok {
		txn.AddAttribute("blob.content_type", blob.ContentType)
		txn.AddAttribute("blob.size_bytes", len(blob.Data))
	}
}

// handleRequest is the pipeline every route goes through: bind and
// validate, run the endpoint, write the response. Each phase is timed,
// logged with the request logger and reported to New Relic.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler returned an error")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle registers a typed endpoint that answers with JSON:
//
//	g.POST("/signup", handler.Handle(h.Handler, h.Signup, http.StatusCreated, &SignupRequest{}))
//
// req is only a type witness: every request binds into a fresh value.
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleBlob registers a typed endpoint that answers with raw bytes.
func HandleBlob[Req validation.Validatable](
	h Handler,
	handler HandlerFunc[Req, Blob],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, BlobResponseHandler{status: status})
	}
}

// HandleNoContent registers a typed endpoint that answers without a body.
func HandleNoContent[Req validation.Validatable](
	h Handler,
	handler HandlerFuncNoContent[Req],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return nil, handler(c, req)
		}, NoContentResponseHandler{status: status})
	}
}

// newRequest returns a fresh zero value of the struct req points to.
func newRequest[Req validation.Validatable](req Req) Req {
	t := reflect.TypeOf(req)
	if t == nil || t.Kind() != reflect.Pointer {
		return req
	}
	return reflect.New(t.Elem()).Interface().(Req)
}
