package ports

import (
	"context"

	"lifebank/internal/core/domain/model/kernel"
)

// InstanceRepository owns the process-wide state of a deployment: the
// administrator identity and the request id counter.
type InstanceRepository interface {
	// GetAdmin returns the administrator. Returns request.ErrNotInitialized
	// before SetAdmin was ever committed.
	GetAdmin(ctx context.Context) (kernel.Identity, error)

	// SetAdmin stores the administrator once. Returns
	// request.ErrAlreadyInitialized when one is already stored, including
	// one committed by a concurrent transaction.
	SetAdmin(ctx context.Context, admin kernel.Identity) error

	// NextID increments the counter and returns the new value, starting at 1.
	// The increment belongs to the enclosing transaction: a rollback gives
	// the id back, and concurrent transactions never observe the same value.
	NextID(ctx context.Context) (uint64, error)
}
