package queries

import (
	"errors"

	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/pkg/errs"
	"lifebank/internal/pkg/guard"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

var ErrListRequestsQueryIsNotConstructed = errors.New(
	"ListRequestsQuery must be created via NewListRequestsQuery constructor",
)

// RequestFilter narrows a listing. Nil fields match everything; set fields
// must all match.
type RequestFilter struct {
	Requester *kernel.Identity
	BloodType *request.BloodType
	Status    *request.Status
	Urgency   *request.Urgency
}

// ListRequestsQuery lists stored requests ordered by id.
type ListRequestsQuery struct {
	filter RequestFilter
	limit  int

	guard guard.ConstructorGuard
}

// NewListRequestsQuery creates the query. A zero limit means DefaultListLimit;
// limits above MaxListLimit are rejected.
func NewListRequestsQuery(filter RequestFilter, limit int) (ListRequestsQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 0 || limit > MaxListLimit {
		return ListRequestsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}

	var errList []error
	if filter.Requester != nil {
		errList = append(errList, filter.Requester.Validate())
	}
	if filter.BloodType != nil {
		errList = append(errList, request.ValidateBloodType(*filter.BloodType))
	}
	if filter.Status != nil {
		errList = append(errList, filter.Status.Validate())
	}
	if filter.Urgency != nil {
		errList = append(errList, request.ValidateUrgency(*filter.Urgency))
	}
	if err := errors.Join(errList...); err != nil {
		return ListRequestsQuery{}, err
	}

	return ListRequestsQuery{
		filter: filter,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListRequestsQueryIsNotConstructed)
}

func (q ListRequestsQuery) Filter() RequestFilter { return q.filter }
func (q ListRequestsQuery) Limit() int            { return q.limit }
