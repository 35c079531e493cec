// Package ports declares what the lifecycle core needs from the outside
// world: durable storage, a transaction boundary, a clock, a way to prove
// who is calling, and somewhere to publish notifications.
package ports

import (
	"context"

	"lifebank/internal/core/domain/model/request"
)

// BloodRequestRepository persists BloodRequest aggregates keyed by id.
type BloodRequestRepository interface {
	// Add stores a new request. The id must not exist yet.
	Add(ctx context.Context, aggregate *request.BloodRequest) error

	// Update overwrites the stored record with the same id.
	Update(ctx context.Context, aggregate *request.BloodRequest) error

	// Get loads a request by id and holds it for update until the unit of
	// work ends. Returns errs.ObjectNotFoundError when no record exists.
	Get(ctx context.Context, id uint64) (*request.BloodRequest, error)
}
