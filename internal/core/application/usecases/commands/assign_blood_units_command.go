package commands

import (
	"errors"
	"slices"

	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/pkg/guard"
)

var ErrAssignBloodUnitsCommandIsNotConstructed = errors.New(
	"AssignBloodUnitsCommand must be created via NewAssignBloodUnitsCommand constructor",
)

// AssignBloodUnitsCommand replaces the units assigned to a request. An empty
// list clears the assignment.
type AssignBloodUnitsCommand struct { //nolint:recvcheck //using for validation
	caller    kernel.Identity
	requestID uint64
	unitIDs   []uint64

	guard guard.ConstructorGuard
}

// NewAssignBloodUnitsCommand creates the command. unitIDs is copied. Any
// requestID is accepted; one that was never created fails as not found.
func NewAssignBloodUnitsCommand(
	caller kernel.Identity,
	requestID uint64,
	unitIDs []uint64,
) (AssignBloodUnitsCommand, error) {
	cmd := AssignBloodUnitsCommand{
		requestID: requestID,
		unitIDs:   slices.Clone(unitIDs),
		guard:     guard.NewConstructorGuard(),
	}

	if err := cmd.setCaller(caller); err != nil {
		return AssignBloodUnitsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignBloodUnitsCommand) Validate() error {
	return c.guard.Validate(ErrAssignBloodUnitsCommandIsNotConstructed)
}

func (c AssignBloodUnitsCommand) Caller() kernel.Identity { return c.caller }
func (c AssignBloodUnitsCommand) RequestID() uint64       { return c.requestID }

// UnitIDs returns a copy of the unit identifiers to assign.
func (c AssignBloodUnitsCommand) UnitIDs() []uint64 {
	return slices.Clone(c.unitIDs)
}

func (c *AssignBloodUnitsCommand) setCaller(caller kernel.Identity) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}
