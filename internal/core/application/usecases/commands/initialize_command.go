package commands

import (
	"errors"

	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/pkg/guard"
)

var ErrInitializeCommandIsNotConstructed = errors.New(
	"InitializeCommand must be created via NewInitializeCommand constructor",
)

// InitializeCommand sets the administrator of a fresh deployment.
//
// Example:
//
//	admin, _ := kernel.NewIdentity("GADMIN")
//	cmd, err := NewInitializeCommand(admin)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type InitializeCommand struct { //nolint:recvcheck //using for validation
	admin kernel.Identity

	guard guard.ConstructorGuard
}

// NewInitializeCommand creates the command. admin must be a constructed identity.
func NewInitializeCommand(admin kernel.Identity) (InitializeCommand, error) {
	cmd := InitializeCommand{guard: guard.NewConstructorGuard()}

	if err := cmd.setAdmin(admin); err != nil {
		return InitializeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InitializeCommand) Validate() error {
	return c.guard.Validate(ErrInitializeCommandIsNotConstructed)
}

// Admin returns the identity to install as administrator.
func (c InitializeCommand) Admin() kernel.Identity {
	return c.admin
}

func (c *InitializeCommand) setAdmin(admin kernel.Identity) error {
	if err := admin.Validate(); err != nil {
		return err
	}

	c.admin = admin
	return nil
}
