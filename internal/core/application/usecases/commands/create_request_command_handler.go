package commands

import (
	"context"
	"time"

	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/core/domain/services"
	"lifebank/internal/core/ports"
	"lifebank/internal/pkg/metrics"
)

// CreateRequestCommandHandler creates Pending blood requests.
//
// Example:
//
//	handler := NewCreateRequestCommandHandler(uowFactory, authenticator, authorizer, clock, notifier, m)
//	id, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, request.ErrNotAuthorizedHospital) {
//	    // nothing was stored and no id was consumed
//	}
type CreateRequestCommandHandler struct {
	uowFactory    UoWFactory
	authenticator ports.Authenticator
	authorizer    services.Authorizer
	clock         ports.Clock
	notifier      Notifier
	metrics       *metrics.Metrics
}

// NewCreateRequestCommandHandler creates the handler. m may be nil.
func NewCreateRequestCommandHandler(
	uowFactory UoWFactory,
	authenticator ports.Authenticator,
	authorizer services.Authorizer,
	clock ports.Clock,
	notifier Notifier,
	m *metrics.Metrics,
) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory:    uowFactory,
		authenticator: authenticator,
		authorizer:    authorizer,
		clock:         clock,
		notifier:      notifier,
		metrics:       m,
	}
}

// Handle checks authentication, initialization and authorization, in that
// order, then allocates the next id and builds the request. Any failure
// rolls back the transaction, so the id counter only advances for requests
// that are actually stored. The created notification is sent after commit.
func (h *CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (id uint64, err error) {
	defer func(start time.Time) { h.metrics.ObserveCommand("create_request", err, time.Since(start)) }(time.Now())

	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	if err = h.authenticator.Authenticate(ctx, cmd.Caller()); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	instance := uow.InstanceRepository()
	admin, err := instance.GetAdmin(ctx)
	if err != nil {
		return 0, err
	}

	if err = h.authorizer.Authorize(cmd.Caller(), admin, services.CanCreate); err != nil {
		return 0, err
	}

	id, err = instance.NextID(ctx)
	if err != nil {
		return 0, err
	}

	aggregate, err := request.NewBloodRequest(
		id,
		cmd.Caller(),
		cmd.BloodType(),
		cmd.QuantityMl(),
		cmd.Urgency(),
		cmd.RequiredBy(),
		cmd.DeliveryAddress(),
		cmd.Metadata(),
		h.clock.Now(),
	)
	if err != nil {
		return 0, err
	}

	if err = uow.BloodRequestRepository().Add(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.notifier.Notify(ctx, aggregate.DomainEvents()...)
	aggregate.ClearDomainEvents()

	return id, nil
}
