package request

import "time"

// Event names double as the topics notifications are published on.
const (
	EventRequestCreated       = "request_created"
	EventRequestStatusChanged = "request_status_changed"
	EventUnitsAssigned        = "units_assigned"
)

// DomainEvent is a fact recorded by the aggregate when it changes. Events
// carry no emission time; the notifier stamps them when they are published.
type DomainEvent interface {
	EventName() string
	AggregateID() uint64
}

// RequestCreated is recorded by NewBloodRequest.
type RequestCreated struct {
	RequestID  uint64
	HospitalID string
	BloodType  BloodType
	QuantityMl int
	Urgency    Urgency
	RequiredBy time.Time
}

func (e RequestCreated) EventName() string   { return EventRequestCreated }
func (e RequestCreated) AggregateID() uint64 { return e.RequestID }

// RequestStatusChanged is recorded by a successful TransitionTo.
type RequestStatusChanged struct {
	RequestID uint64
	OldStatus Status
	NewStatus Status
}

func (e RequestStatusChanged) EventName() string   { return EventRequestStatusChanged }
func (e RequestStatusChanged) AggregateID() uint64 { return e.RequestID }

// UnitsAssigned is recorded by AssignUnits.
type UnitsAssigned struct {
	RequestID     uint64
	AssignedUnits []uint64
}

func (e UnitsAssigned) EventName() string   { return EventUnitsAssigned }
func (e UnitsAssigned) AggregateID() uint64 { return e.RequestID }
