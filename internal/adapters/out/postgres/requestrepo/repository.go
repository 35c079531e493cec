package requestrepo

import (
	"context"
	"errors"
	"strconv"

	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBloodRequestRepository implements ports.BloodRequestRepository using GORM.
type GormBloodRequestRepository struct {
	db *gorm.DB
}

// NewGormBloodRequestRepository creates a repository on db, which may be a transaction.
func NewGormBloodRequestRepository(db *gorm.DB) *GormBloodRequestRepository {
	return &GormBloodRequestRepository{db: db}
}

// Add inserts a new request.
func (r *GormBloodRequestRepository) Add(ctx context.Context, aggregate *request.BloodRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update overwrites every column of an existing request.
func (r *GormBloodRequestRepository) Update(ctx context.Context, aggregate *request.BloodRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&BloodRequestDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("bloodRequest", strconv.FormatUint(dto.ID, 10))
	}

	return nil
}

// Get retrieves a request by id. Inside a transaction the row stays locked
// until commit or rollback, so a concurrent command on the same request
// waits and then sees the committed status.
func (r *GormBloodRequestRepository) Get(ctx context.Context, id uint64) (*request.BloodRequest, error) {
	var dto BloodRequestDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bloodRequest", strconv.FormatUint(id, 10))
		}
		return nil, err
	}

	return toDomain(dto)
}
