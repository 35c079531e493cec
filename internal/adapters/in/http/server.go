// Package http exposes the lifecycle engine over a JSON API on echo. The
// caller claims an identity with the X-Caller-ID header; the bearer token
// verified by the auth middleware proves it.
package http

import (
	"context"
	"net/http"

	"lifebank/internal/core/application/usecases/commands"
	"lifebank/internal/core/application/usecases/queries"
	"lifebank/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const HeaderCallerID = "X-Caller-ID"

type (
	Initializer interface {
		Handle(ctx context.Context, cmd commands.InitializeCommand) error
	}
	RequestCreator interface {
		Handle(ctx context.Context, cmd commands.CreateRequestCommand) (uint64, error)
	}
	StatusUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateRequestStatusCommand) error
	}
	UnitsAssigner interface {
		Handle(ctx context.Context, cmd commands.AssignBloodUnitsCommand) error
	}
	RequestGetter interface {
		Handle(ctx context.Context, query queries.GetRequestQuery) (queries.BloodRequestView, error)
	}
	RequestLister interface {
		Handle(ctx context.Context, query queries.ListRequestsQuery) ([]queries.BloodRequestView, error)
	}
	OverdueLister interface {
		Handle(ctx context.Context, query queries.GetOverdueRequestsQuery) ([]queries.OverdueRequestView, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	Initialize    Initializer
	CreateRequest RequestCreator
	UpdateStatus  StatusUpdater
	AssignUnits   UnitsAssigner
	GetRequest    RequestGetter
	ListRequests  RequestLister
	ListOverdue   OverdueLister
}

// Server coordinates between HTTP handlers and application use cases.
// Mutating routes authenticate the caller before reading any other input;
// the command handlers check again inside the use case.
type Server struct {
	handlers      Handlers
	authenticator ports.Authenticator
}

func NewServer(handlers Handlers, authenticator ports.Authenticator) *Server {
	return &Server{handlers: handlers, authenticator: authenticator}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/admin/initialize", s.Initialize)

	api.POST("/requests", s.CreateRequest)
	api.GET("/requests", s.ListRequests)
	api.GET("/requests/overdue", s.ListOverdueRequests)
	api.GET("/requests/:id", s.GetRequest)
	api.PUT("/requests/:id/status", s.UpdateRequestStatus)
	api.PUT("/requests/:id/units", s.AssignBloodUnits)
}

// Initialize handles POST /api/v1/admin/initialize. The caller becomes the
// administrator.
func (s *Server) Initialize(ctx echo.Context) error {
	caller, err := s.authenticatedCaller(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewInitializeCommand(caller)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.Initialize.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateRequest handles POST /api/v1/requests.
func (s *Server) CreateRequest(ctx echo.Context) error {
	caller, err := s.authenticatedCaller(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body CreateRequestBody
	if err = ctx.Bind(&body); err != nil {
		return writeBindError(ctx)
	}

	cmd, err := body.toCommand(caller)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := s.handlers.CreateRequest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// GetRequest handles GET /api/v1/requests/:id.
func (s *Server) GetRequest(ctx echo.Context) error {
	id, err := requestIDFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetRequestQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.handlers.GetRequest.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newRequestResponse(view))
}

// ListRequests handles GET /api/v1/requests.
func (s *Server) ListRequests(ctx echo.Context) error {
	query, err := listQueryFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.handlers.ListRequests.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]RequestResponse, len(views))
	for i, view := range views {
		response[i] = newRequestResponse(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListOverdueRequests handles GET /api/v1/requests/overdue.
func (s *Server) ListOverdueRequests(ctx echo.Context) error {
	views, err := s.handlers.ListOverdue.Handle(ctx.Request().Context(), queries.NewGetOverdueRequestsQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OverdueRequestResponse, len(views))
	for i, view := range views {
		response[i] = newOverdueRequestResponse(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateRequestStatus handles PUT /api/v1/requests/:id/status.
func (s *Server) UpdateRequestStatus(ctx echo.Context) error {
	caller, err := s.authenticatedCaller(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := requestIDFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body UpdateStatusBody
	if err = ctx.Bind(&body); err != nil {
		return writeBindError(ctx)
	}

	cmd, err := body.toCommand(caller, id)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.UpdateStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignBloodUnits handles PUT /api/v1/requests/:id/units.
func (s *Server) AssignBloodUnits(ctx echo.Context) error {
	caller, err := s.authenticatedCaller(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := requestIDFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body AssignUnitsBody
	if err = ctx.Bind(&body); err != nil {
		return writeBindError(ctx)
	}

	cmd, err := commands.NewAssignBloodUnitsCommand(caller, id, body.UnitIDs)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.AssignUnits.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
