// Package commands contains the operations that change lifecycle state.
// Every command follows the same pattern: validate the command object,
// authenticate the caller, open a unit of work, check initialization and
// authorization, mutate the aggregate, persist, commit and only then notify.
package commands

import (
	"context"

	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides access to the request repository within a transaction.
	RequestRepoFactory interface {
		BloodRequestRepository() ports.BloodRequestRepository
	}

	// InstanceRepoFactory provides access to the instance settings within a transaction.
	InstanceRepoFactory interface {
		InstanceRepository() ports.InstanceRepository
	}

	// InstanceUoW manages transactions that only touch instance settings.
	InstanceUoW interface {
		TxManager
		InstanceRepoFactory
	}

	// InstanceUoWFactory creates new instance unit of work instances.
	InstanceUoWFactory interface {
		Create() InstanceUoW
	}

	// UoW manages transactions across instance settings and requests.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   admin, err := uow.InstanceRepository().GetAdmin(ctx)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		InstanceRepoFactory
		RequestRepoFactory
	}

	// UoWFactory creates new unit of work instances for lifecycle operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Notifier publishes the events recorded by an aggregate after commit.
type Notifier interface {
	Notify(ctx context.Context, events ...request.DomainEvent)
}
