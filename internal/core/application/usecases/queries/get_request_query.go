package queries

import (
	"errors"

	"lifebank/internal/pkg/guard"
)

var ErrGetRequestQueryIsNotConstructed = errors.New(
	"GetRequestQuery must be created via NewGetRequestQuery constructor",
)

// GetRequestQuery fetches one request by id.
//
// Example:
//
//	query, err := NewGetRequestQuery(1)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, request.ErrRequestNotFound) {
//	    // never created
//	}
type GetRequestQuery struct {
	requestID uint64

	guard guard.ConstructorGuard
}

// NewGetRequestQuery creates the query. Ids start at 1, so 0 is accepted and
// simply never found.
func NewGetRequestQuery(requestID uint64) (GetRequestQuery, error) {
	return GetRequestQuery{requestID: requestID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

// RequestID returns the id to look up.
func (q GetRequestQuery) RequestID() uint64 {
	return q.requestID
}
