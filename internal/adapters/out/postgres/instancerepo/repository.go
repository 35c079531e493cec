package instancerepo

import (
	"context"
	"errors"

	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/core/domain/model/request"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInstanceRepository implements ports.InstanceRepository using GORM.
type GormInstanceRepository struct {
	db *gorm.DB
}

// NewGormInstanceRepository creates a repository on db, which may be a transaction.
func NewGormInstanceRepository(db *gorm.DB) *GormInstanceRepository {
	return &GormInstanceRepository{db: db}
}

// GetAdmin returns request.ErrNotInitialized while no settings row exists.
func (r *GormInstanceRepository) GetAdmin(ctx context.Context) (kernel.Identity, error) {
	dto, err := r.load(r.db.WithContext(ctx))
	if err != nil {
		return kernel.Identity{}, err
	}

	return kernel.NewIdentity(dto.AdminID)
}

// SetAdmin creates the settings row. An existing row is never touched:
// the insert is skipped and request.ErrAlreadyInitialized returned. A
// concurrent insert that has not committed yet makes this call wait for it.
func (r *GormInstanceRepository) SetAdmin(ctx context.Context, admin kernel.Identity) error {
	if err := admin.Validate(); err != nil {
		return err
	}

	dto := InstanceSettingsDTO{ID: singletonID, AdminID: admin.String()}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return request.ErrAlreadyInitialized
	}

	return nil
}

// NextID locks the settings row, increments the counter and returns it.
// The lock is held until the enclosing transaction ends, so concurrent
// creations are serialized on the counter.
func (r *GormInstanceRepository) NextID(ctx context.Context) (uint64, error) {
	db := r.db.WithContext(ctx)

	dto, err := r.load(db.Clauses(clause.Locking{Strength: "UPDATE"}))
	if err != nil {
		return 0, err
	}

	next := dto.RequestCounter + 1
	if err = db.Model(&InstanceSettingsDTO{}).
		Where("id = ?", singletonID).
		Update("request_counter", next).Error; err != nil {
		return 0, err
	}

	return next, nil
}

func (r *GormInstanceRepository) load(db *gorm.DB) (InstanceSettingsDTO, error) {
	var dto InstanceSettingsDTO
	if err := db.First(&dto, "id = ?", singletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InstanceSettingsDTO{}, request.ErrNotInitialized
		}
		return InstanceSettingsDTO{}, err
	}
	return dto, nil
}
