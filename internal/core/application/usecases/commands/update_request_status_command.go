package commands

import (
	"errors"

	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/pkg/guard"
)

var ErrUpdateRequestStatusCommandIsNotConstructed = errors.New(
	"UpdateRequestStatusCommand must be created via NewUpdateRequestStatusCommand constructor",
)

// UpdateRequestStatusCommand moves a request along the lifecycle.
type UpdateRequestStatusCommand struct { //nolint:recvcheck //using for validation
	caller    kernel.Identity
	requestID uint64
	newStatus request.Status

	guard guard.ConstructorGuard
}

// NewUpdateRequestStatusCommand creates the command. newStatus must be a
// defined status; whether the transition is legal is decided by the aggregate.
// Any requestID is accepted; one that was never created fails as not found.
func NewUpdateRequestStatusCommand(
	caller kernel.Identity,
	requestID uint64,
	newStatus request.Status,
) (UpdateRequestStatusCommand, error) {
	cmd := UpdateRequestStatusCommand{requestID: requestID, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setCaller(caller),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return UpdateRequestStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRequestStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRequestStatusCommandIsNotConstructed)
}

func (c UpdateRequestStatusCommand) Caller() kernel.Identity   { return c.caller }
func (c UpdateRequestStatusCommand) RequestID() uint64         { return c.requestID }
func (c UpdateRequestStatusCommand) NewStatus() request.Status { return c.newStatus }

func (c *UpdateRequestStatusCommand) setCaller(caller kernel.Identity) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}

func (c *UpdateRequestStatusCommand) setNewStatus(status request.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.newStatus = status
	return nil
}
