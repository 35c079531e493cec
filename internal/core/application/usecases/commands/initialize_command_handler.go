package commands

import (
	"context"
	"errors"
	"time"

	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/core/ports"
	"lifebank/internal/pkg/metrics"
)

// InitializeCommandHandler installs the administrator exactly once.
type InitializeCommandHandler struct {
	uowFactory    InstanceUoWFactory
	authenticator ports.Authenticator
	metrics       *metrics.Metrics
}

// NewInitializeCommandHandler creates the handler. m may be nil.
func NewInitializeCommandHandler(
	uowFactory InstanceUoWFactory,
	authenticator ports.Authenticator,
	m *metrics.Metrics,
) InitializeCommandHandler {
	return InitializeCommandHandler{
		uowFactory:    uowFactory,
		authenticator: authenticator,
		metrics:       m,
	}
}

// Handle authenticates the would-be administrator and stores it.
// Returns request.ErrAlreadyInitialized when an administrator is already set;
// the stored administrator is left unchanged in that case.
func (h *InitializeCommandHandler) Handle(ctx context.Context, cmd InitializeCommand) (err error) {
	defer func(start time.Time) { h.metrics.ObserveCommand("initialize", err, time.Since(start)) }(time.Now())

	if err = cmd.Validate(); err != nil {
		return err
	}

	if err = h.authenticator.Authenticate(ctx, cmd.Admin()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	instance := uow.InstanceRepository()
	_, err = instance.GetAdmin(ctx)
	switch {
	case err == nil:
		return request.ErrAlreadyInitialized
	case !errors.Is(err, request.ErrNotInitialized):
		return err
	}

	// SetAdmin reports ErrAlreadyInitialized itself when a concurrent
	// initialize committed after the check above.
	if err = instance.SetAdmin(ctx, cmd.Admin()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
