// Package postgres provides the GORM implementation of the unit of work used
// by the lifecycle commands. A unit of work wraps one database transaction;
// the repositories it hands out run inside that transaction, so a command
// either commits every write (request row, counter, administrator) or none.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	id, err := uow.InstanceRepository().NextID(ctx)
//	if err != nil {
//	    return err
//	}
//	// ... build and add the request
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns its transaction; never share one between goroutines
//   - NextID row-locks the instance settings until the transaction ends
//   - BloodRequestRepository.Get row-locks the loaded request the same way
package postgres

import (
	"context"

	"lifebank/internal/adapters/out/postgres/instancerepo"
	"lifebank/internal/adapters/out/postgres/requestrepo"
	"lifebank/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances on one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with no transaction started.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it again while a transaction is
// active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the changes permanent and closes the transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the changes and closes the transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which is
// the normal outcome of the deferred Rollback after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// BloodRequestRepository returns a request repository bound to the active
// transaction, or to the pool when none is active.
func (uow *GormUnitOfWork) BloodRequestRepository() ports.BloodRequestRepository {
	return requestrepo.NewGormBloodRequestRepository(uow.conn())
}

// InstanceRepository returns an instance settings repository bound to the
// active transaction, or to the pool when none is active.
func (uow *GormUnitOfWork) InstanceRepository() ports.InstanceRepository {
	return instancerepo.NewGormInstanceRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// Models lists the DTOs to migrate for the lifecycle schema.
func Models() []any {
	return []any{&instancerepo.InstanceSettingsDTO{}, &requestrepo.BloodRequestDTO{}}
}
