package http

import (
	"fmt"
	"strconv"

	"lifebank/internal/core/application/usecases/queries"
	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// callerFrom reads the claimed identity. A missing claim is an
// authentication failure.
func callerFrom(ctx echo.Context) (kernel.Identity, error) {
	caller, err := kernel.NewIdentity(ctx.Request().Header.Get(HeaderCallerID))
	if err != nil {
		return kernel.Identity{}, fmt.Errorf("%w: %w", request.ErrUnauthorized, err)
	}
	return caller, nil
}

// authenticatedCaller reads the claimed identity and proves it before any
// path, query or body input is looked at.
func (s *Server) authenticatedCaller(ctx echo.Context) (kernel.Identity, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return kernel.Identity{}, err
	}

	if err = s.authenticator.Authenticate(ctx.Request().Context(), caller); err != nil {
		return kernel.Identity{}, err
	}
	return caller, nil
}

// requestIDFrom parses the path id. 0 is a well-formed id that is simply
// never created, so it is left to the lookup to report as not found.
func requestIDFrom(ctx echo.Context) (uint64, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", request.ErrInvalidInput,
			errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%q is not a request id", raw)))
	}
	return id, nil
}

func listQueryFrom(ctx echo.Context) (queries.ListRequestsQuery, error) {
	var filter queries.RequestFilter

	if raw := ctx.QueryParam("requester"); raw != "" {
		requester, err := kernel.NewIdentity(raw)
		if err != nil {
			return queries.ListRequestsQuery{}, err
		}
		filter.Requester = &requester
	}
	if raw := ctx.QueryParam("blood_type"); raw != "" {
		bloodType, err := request.ParseBloodType(raw)
		if err != nil {
			return queries.ListRequestsQuery{}, err
		}
		filter.BloodType = &bloodType
	}
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := request.ParseStatus(raw)
		if err != nil {
			return queries.ListRequestsQuery{}, err
		}
		filter.Status = &status
	}
	if raw := ctx.QueryParam("urgency"); raw != "" {
		urgency, err := request.ParseUrgency(raw)
		if err != nil {
			return queries.ListRequestsQuery{}, err
		}
		filter.Urgency = &urgency
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return queries.ListRequestsQuery{}, errs.NewValueIsInvalidErrorWithCause("limit", err)
		}
		if parsed <= 0 {
			return queries.ListRequestsQuery{}, errs.NewValueIsOutOfRangeError("limit", parsed, 1, queries.MaxListLimit)
		}
		limit = parsed
	}

	return queries.NewListRequestsQuery(filter, limit)
}
