package commands

import (
	"context"
	"time"

	"lifebank/internal/core/domain/services"
	"lifebank/internal/core/ports"
	"lifebank/internal/pkg/metrics"
)

// AssignBloodUnitsCommandHandler records which blood units serve a request.
type AssignBloodUnitsCommandHandler struct {
	uowFactory    UoWFactory
	authenticator ports.Authenticator
	authorizer    services.Authorizer
	notifier      Notifier
	metrics       *metrics.Metrics
}

// NewAssignBloodUnitsCommandHandler creates the handler. m may be nil.
func NewAssignBloodUnitsCommandHandler(
	uowFactory UoWFactory,
	authenticator ports.Authenticator,
	authorizer services.Authorizer,
	notifier Notifier,
	m *metrics.Metrics,
) AssignBloodUnitsCommandHandler {
	return AssignBloodUnitsCommandHandler{
		uowFactory:    uowFactory,
		authenticator: authenticator,
		authorizer:    authorizer,
		notifier:      notifier,
		metrics:       m,
	}
}

// Handle replaces the assigned units of the request wholesale. The status is
// not consulted: units may be assigned in any status, terminal ones included.
func (h *AssignBloodUnitsCommandHandler) Handle(ctx context.Context, cmd AssignBloodUnitsCommand) (err error) {
	defer func(start time.Time) {
		h.metrics.ObserveCommand("assign_blood_units", err, time.Since(start))
	}(time.Now())

	if err = cmd.Validate(); err != nil {
		return err
	}

	if err = h.authenticator.Authenticate(ctx, cmd.Caller()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	admin, err := uow.InstanceRepository().GetAdmin(ctx)
	if err != nil {
		return err
	}

	if err = h.authorizer.Authorize(cmd.Caller(), admin, services.CanAssign); err != nil {
		return err
	}

	requests := uow.BloodRequestRepository()
	aggregate, err := getRequest(ctx, requests, cmd.RequestID())
	if err != nil {
		return err
	}

	// TODO: reject assignments whose total volume exceeds QuantityMl once unit volumes are known to the service.
	if err = aggregate.AssignUnits(cmd.UnitIDs()); err != nil {
		return err
	}

	if err = requests.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, aggregate.DomainEvents()...)
	aggregate.ClearDomainEvents()

	return nil
}
