package commands

import (
	"errors"
	"time"

	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand asks for a new blood request on behalf of a hospital.
// Request parameters are carried as given; they are validated once, when
// the aggregate is built by the handler.
//
// Example:
//
//	cmd, err := NewCreateRequestCommand(
//	    hospital, request.ONegative, 450, request.Urgent,
//	    time.Now().Add(48*time.Hour), "Ward 3, City Hospital",
//	    request.NewMetadata("patient-7", "Hip replacement", ""),
//	)
//	if err != nil {
//	    return err
//	}
//	id, err := handler.Handle(ctx, cmd)
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	caller          kernel.Identity
	bloodType       request.BloodType
	quantityMl      int
	urgency         request.Urgency
	requiredBy      time.Time
	deliveryAddress string
	metadata        request.Metadata

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand creates the command. Only the caller identity is
// checked here.
func NewCreateRequestCommand(
	caller kernel.Identity,
	bloodType request.BloodType,
	quantityMl int,
	urgency request.Urgency,
	requiredBy time.Time,
	deliveryAddress string,
	metadata request.Metadata,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		bloodType:       bloodType,
		quantityMl:      quantityMl,
		urgency:         urgency,
		requiredBy:      requiredBy,
		deliveryAddress: deliveryAddress,
		metadata:        metadata,
		guard:           guard.NewConstructorGuard(),
	}

	if err := cmd.setCaller(caller); err != nil {
		return CreateRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) Caller() kernel.Identity      { return c.caller }
func (c CreateRequestCommand) BloodType() request.BloodType { return c.bloodType }
func (c CreateRequestCommand) QuantityMl() int              { return c.quantityMl }
func (c CreateRequestCommand) Urgency() request.Urgency     { return c.urgency }
func (c CreateRequestCommand) RequiredBy() time.Time        { return c.requiredBy }
func (c CreateRequestCommand) DeliveryAddress() string      { return c.deliveryAddress }
func (c CreateRequestCommand) Metadata() request.Metadata   { return c.metadata }

func (c *CreateRequestCommand) setCaller(caller kernel.Identity) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	c.caller = caller
	return nil
}
