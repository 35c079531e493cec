package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for every command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a command: either every write
// made through its repositories is committed or none is.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// BloodRequestRepository returns a repository bound to the current transaction.
	BloodRequestRepository() BloodRequestRepository

	// InstanceRepository returns a repository bound to the current transaction.
	InstanceRepository() InstanceRepository
}
