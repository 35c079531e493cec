package commands

import (
	"context"
	"time"

	"lifebank/internal/core/domain/services"
	"lifebank/internal/core/ports"
	"lifebank/internal/pkg/metrics"
)

// UpdateRequestStatusCommandHandler applies status transitions on behalf of
// the blood bank authority.
type UpdateRequestStatusCommandHandler struct {
	uowFactory    UoWFactory
	authenticator ports.Authenticator
	authorizer    services.Authorizer
	clock         ports.Clock
	notifier      Notifier
	metrics       *metrics.Metrics
}

// NewUpdateRequestStatusCommandHandler creates the handler. m may be nil.
func NewUpdateRequestStatusCommandHandler(
	uowFactory UoWFactory,
	authenticator ports.Authenticator,
	authorizer services.Authorizer,
	clock ports.Clock,
	notifier Notifier,
	m *metrics.Metrics,
) UpdateRequestStatusCommandHandler {
	return UpdateRequestStatusCommandHandler{
		uowFactory:    uowFactory,
		authenticator: authenticator,
		authorizer:    authorizer,
		clock:         clock,
		notifier:      notifier,
		metrics:       m,
	}
}

// Handle re-reads the request, applies the transition and persists it.
// Fails with request.ErrRequestNotFound for unknown ids and
// request.ErrInvalidStatusTransition for illegal edges; the stored record
// is untouched on any failure.
func (h *UpdateRequestStatusCommandHandler) Handle(ctx context.Context, cmd UpdateRequestStatusCommand) (err error) {
	defer func(start time.Time) {
		h.metrics.ObserveCommand("update_request_status", err, time.Since(start))
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

	if err = h.authorizer.Authorize(cmd.Caller(), admin, services.CanTransition); err != nil {
		return err
	}

	requests := uow.BloodRequestRepository()
	aggregate, err := getRequest(ctx, requests, cmd.RequestID())
	if err != nil {
		return err
	}

	oldStatus := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.NewStatus(), h.clock.Now()); err != nil {
		return err
	}

	if err = requests.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.metrics.IncrementTransition(oldStatus.String(), cmd.NewStatus().String())
	h.notifier.Notify(ctx, aggregate.DomainEvents()...)
	aggregate.ClearDomainEvents()

	return nil
}
