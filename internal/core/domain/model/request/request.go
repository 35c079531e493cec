package request

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/pkg/errs"
	"lifebank/internal/pkg/guard"
)

// ErrBloodRequestIsNotConstructed is returned when a BloodRequest was not created
// through NewBloodRequest or RestoreBloodRequest.
var ErrBloodRequestIsNotConstructed = errors.New(
	"BloodRequest must be created via NewBloodRequest or RestoreBloodRequest")

// BloodRequest is the aggregate root of the lifecycle. It records who asked
// for which blood, how much, by when and where to, and it owns the rules for
// moving between statuses.
//
// BloodRequest follows these invariants:
//   - id is positive and never changes
//   - quantityMl is within [MinQuantityMl, MaxQuantityMl]
//   - createdAt is strictly before requiredBy
//   - deliveryAddress is not blank
//   - status only changes along the edges accepted by Status.CanTransitionTo
//   - fulfilledAt is nil until the transition into Fulfilled and fixed afterwards
type BloodRequest struct {
	id              uint64
	requesterID     kernel.Identity
	bloodType       BloodType
	quantityMl      int
	urgency         Urgency
	status          Status
	createdAt       time.Time
	requiredBy      time.Time
	fulfilledAt     *time.Time
	assignedUnits   []uint64
	deliveryAddress string
	metadata        Metadata

	domainEvents []DomainEvent
	guard        guard.ConstructorGuard
}

// NewBloodRequest creates a Pending request with no assigned units. It is the
// only place where creation parameters are validated (see ValidateParameters),
// using now as the creation instant.
//
// Example:
//
//	req, err := request.NewBloodRequest(
//	    id, hospital, request.ONegative, 450, request.Urgent,
//	    now.Add(48*time.Hour), "Ward 3, City Hospital",
//	    request.NewMetadata("patient-7", "Hip replacement", ""),
//	    now,
//	)
func NewBloodRequest(
	id uint64,
	requesterID kernel.Identity,
	bloodType BloodType,
	quantityMl int,
	urgency Urgency,
	requiredBy time.Time,
	deliveryAddress string,
	metadata Metadata,
	now time.Time,
) (*BloodRequest, error) {
	if err := ValidateParameters(quantityMl, requiredBy, deliveryAddress, bloodType, urgency, now); err != nil {
		return nil, err
	}

	if err := errors.Join(validateID(id), requesterID.Validate()); err != nil {
		return nil, err
	}

	r := &BloodRequest{
		id:              id,
		requesterID:     requesterID,
		bloodType:       bloodType,
		quantityMl:      quantityMl,
		urgency:         urgency,
		status:          Pending,
		createdAt:       now,
		requiredBy:      requiredBy,
		assignedUnits:   []uint64{},
		deliveryAddress: deliveryAddress,
		metadata:        metadata,
		guard:           guard.NewConstructorGuard(),
	}

	r.record(RequestCreated{
		RequestID:  id,
		HospitalID: requesterID.String(),
		BloodType:  bloodType,
		QuantityMl: quantityMl,
		Urgency:    urgency,
		RequiredBy: requiredBy,
	})

	return r, nil
}

// RestoreBloodRequest rebuilds a request from persisted state. It checks the
// structural invariants but not the "deadline is in the future" rule, which
// only applies at creation time.
func RestoreBloodRequest(
	id uint64,
	requesterID kernel.Identity,
	bloodType BloodType,
	quantityMl int,
	urgency Urgency,
	status Status,
	createdAt time.Time,
	requiredBy time.Time,
	fulfilledAt *time.Time,
	assignedUnits []uint64,
	deliveryAddress string,
	metadata Metadata,
) (*BloodRequest, error) {
	if err := errors.Join(
		validateID(id),
		requesterID.Validate(),
		ValidateBloodType(bloodType),
		validateQuantity(quantityMl),
		ValidateUrgency(urgency),
		status.Validate(),
		ValidateDeliveryAddress(deliveryAddress),
		validateWindow(createdAt, requiredBy),
		validateFulfilledAt(status, fulfilledAt),
	); err != nil {
		return nil, err
	}

	units := slices.Clone(assignedUnits)
	if units == nil {
		units = []uint64{}
	}

	var fulfilled *time.Time
	if fulfilledAt != nil {
		t := *fulfilledAt
		fulfilled = &t
	}

	return &BloodRequest{
		id:              id,
		requesterID:     requesterID,
		bloodType:       bloodType,
		quantityMl:      quantityMl,
		urgency:         urgency,
		status:          status,
		createdAt:       createdAt,
		requiredBy:      requiredBy,
		fulfilledAt:     fulfilled,
		assignedUnits:   units,
		deliveryAddress: deliveryAddress,
		metadata:        metadata,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the request was built by one of the constructors.
func (r *BloodRequest) Validate() error {
	if r == nil {
		return ErrBloodRequestIsNotConstructed
	}
	return r.guard.Validate(ErrBloodRequestIsNotConstructed)
}

func (r *BloodRequest) ID() uint64                   { return r.id }
func (r *BloodRequest) RequesterID() kernel.Identity { return r.requesterID }
func (r *BloodRequest) BloodType() BloodType         { return r.bloodType }
func (r *BloodRequest) QuantityMl() int              { return r.quantityMl }
func (r *BloodRequest) Urgency() Urgency             { return r.urgency }
func (r *BloodRequest) Status() Status               { return r.status }
func (r *BloodRequest) CreatedAt() time.Time         { return r.createdAt }
func (r *BloodRequest) RequiredBy() time.Time        { return r.requiredBy }
func (r *BloodRequest) DeliveryAddress() string      { return r.deliveryAddress }
func (r *BloodRequest) Metadata() Metadata           { return r.metadata }

// FulfilledAt returns the fulfillment instant, or nil before fulfillment.
func (r *BloodRequest) FulfilledAt() *time.Time {
	if r.fulfilledAt == nil {
		return nil
	}
	t := *r.fulfilledAt
	return &t
}

// AssignedUnits returns a copy of the assigned unit identifiers.
func (r *BloodRequest) AssignedUnits() []uint64 {
	return slices.Clone(r.assignedUnits)
}

// TransitionTo moves the request to next if the lifecycle allows it. When
// next is Fulfilled, at becomes the fulfillment instant.
//
// Returns ErrInvalidStatusTransition when the edge does not exist, including
// every attempt to leave a terminal status.
func (r *BloodRequest) TransitionTo(next Status, at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}

	if !r.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %w", ErrInvalidStatusTransition,
			errs.NewValueIsInvalidErrorWithCause("status",
				fmt.Errorf("%s is not a valid transition from %s", next, r.status)))
	}

	old := r.status
	r.status = next
	if next == Fulfilled && r.fulfilledAt == nil {
		fulfilledAt := at
		r.fulfilledAt = &fulfilledAt
	}

	r.record(RequestStatusChanged{RequestID: r.id, OldStatus: old, NewStatus: next})
	return nil
}

// AssignUnits replaces the assigned units with unitIDs. The previous list is
// discarded; no merge, deduplication or cap is applied.
func (r *BloodRequest) AssignUnits(unitIDs []uint64) error {
	if err := r.Validate(); err != nil {
		return err
	}

	units := slices.Clone(unitIDs)
	if units == nil {
		units = []uint64{}
	}
	r.assignedUnits = units

	r.record(UnitsAssigned{RequestID: r.id, AssignedUnits: slices.Clone(units)})
	return nil
}

// IsOverdue reports whether now is strictly past required_by.
func (r *BloodRequest) IsOverdue(now time.Time) bool {
	return IsOverdue(r.requiredBy, now)
}

// TimeRemaining returns required_by - now, negative once overdue.
func (r *BloodRequest) TimeRemaining(now time.Time) time.Duration {
	return TimeUntilDeadline(r.requiredBy, now)
}

// CanFulfill reports whether the request is Approved and not overdue.
func (r *BloodRequest) CanFulfill(now time.Time) bool {
	return r.status == Approved && !r.IsOverdue(now)
}

// IsSLABreached reports whether an open request has outlived the maximum
// fulfillment time of its urgency. Informational only.
func (r *BloodRequest) IsSLABreached(now time.Time) bool {
	if r.status.IsTerminal() || r.status == Fulfilled {
		return false
	}
	return IsSLABreached(r.createdAt, r.urgency, now)
}

// DomainEvents returns the events recorded since construction or the last
// ClearDomainEvents call, oldest first.
func (r *BloodRequest) DomainEvents() []DomainEvent {
	return slices.Clone(r.domainEvents)
}

// ClearDomainEvents forgets recorded events once they have been dispatched.
func (r *BloodRequest) ClearDomainEvents() {
	r.domainEvents = nil
}

func (r *BloodRequest) record(event DomainEvent) {
	r.domainEvents = append(r.domainEvents, event)
}

func validateID(id uint64) error {
	if id == 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", errors.New("0 is not a valid request id"))
	}
	return nil
}

func validateQuantity(quantityMl int) error {
	if quantityMl < MinQuantityMl || quantityMl > MaxQuantityMl {
		return fmt.Errorf("%w: %w", ErrInvalidQuantity,
			errs.NewValueIsOutOfRangeError("quantityMl", quantityMl, MinQuantityMl, MaxQuantityMl))
	}
	return nil
}

func validateWindow(createdAt, requiredBy time.Time) error {
	if !createdAt.Before(requiredBy) {
		return fmt.Errorf("%w: %w", ErrInvalidTimestamp,
			errs.NewValueIsInvalidErrorWithCause("requiredBy", errors.New("is not after createdAt")))
	}
	return nil
}

// validateFulfilledAt keeps fulfilledAt consistent with the status: only
// Fulfilled and Completed requests went through the Fulfilled transition.
func validateFulfilledAt(status Status, fulfilledAt *time.Time) error {
	wasFulfilled := status == Fulfilled || status == Completed
	if wasFulfilled && fulfilledAt == nil {
		return errs.NewValueIsRequiredErrorWithCause("fulfilledAt",
			fmt.Errorf("%s requests must have a fulfillment time", status))
	}
	if !wasFulfilled && fulfilledAt != nil {
		return errs.NewValueIsInvalidErrorWithCause("fulfilledAt",
			fmt.Errorf("%s requests cannot have a fulfillment time", status))
	}
	return nil
}
