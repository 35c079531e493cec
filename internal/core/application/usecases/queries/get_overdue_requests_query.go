package queries

import (
	"errors"

	"lifebank/internal/pkg/guard"
)

var ErrGetOverdueRequestsQueryIsNotConstructed = errors.New(
	"GetOverdueRequestsQuery must be created via NewGetOverdueRequestsQuery constructor",
)

// GetOverdueRequestsQuery lists open requests past their deadline.
type GetOverdueRequestsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOverdueRequestsQuery() GetOverdueRequestsQuery {
	return GetOverdueRequestsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOverdueRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueRequestsQueryIsNotConstructed)
}
