package services

import (
	"fmt"

	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/core/domain/model/request"
)

// Capability names a lifecycle operation that requires authorization.
type Capability int

const (
	CanCreate Capability = iota + 1
	CanTransition
	CanAssign
)

func (c Capability) String() string {
	switch c {
	case CanCreate:
		return "create"
	case CanTransition:
		return "transition"
	case CanAssign:
		return "assign"
	default:
		return "unknown"
	}
}

// Authorizer decides whether an authenticated caller may use a capability.
// The state machine never compares identities itself; a registry of
// hospitals and blood banks can replace the single-authority rule by
// providing another Authorizer.
type Authorizer interface {
	Authorize(caller, admin kernel.Identity, capability Capability) error
}

// AdministratorAuthorizer grants every capability to the administrator and
// nothing to anybody else.
type AdministratorAuthorizer struct{}

// NewAdministratorAuthorizer creates the single-authority authorizer.
func NewAdministratorAuthorizer() AdministratorAuthorizer {
	return AdministratorAuthorizer{}
}

// Authorize returns request.ErrNotAuthorizedHospital when a non-administrator
// tries to create a request and request.ErrNotAuthorizedBloodBank when one
// tries to transition a request or assign units.
func (AdministratorAuthorizer) Authorize(caller, admin kernel.Identity, capability Capability) error {
	if caller.IsEqual(admin) {
		return nil
	}

	switch capability {
	case CanCreate:
		return request.ErrNotAuthorizedHospital
	case CanTransition, CanAssign:
		return request.ErrNotAuthorizedBloodBank
	default:
		return fmt.Errorf("%w: unknown capability %d", request.ErrUnauthorized, capability)
	}
}
