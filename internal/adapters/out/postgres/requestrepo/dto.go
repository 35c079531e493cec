// Package requestrepo persists BloodRequest aggregates in the blood_requests
// table. The indexed columns (requester, blood type, status, urgency,
// required_by) serve the read-side queries.
package requestrepo

import (
	"time"

	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/core/domain/model/request"

	"github.com/lib/pq"
)

// BloodRequestDTO is one row of blood_requests.
type BloodRequestDTO struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement:false"`
	RequesterID     string    `gorm:"not null;index"`
	BloodType       int       `gorm:"not null;index"`
	QuantityMl      int       `gorm:"not null"`
	Urgency         int       `gorm:"not null;index"`
	Status          int       `gorm:"not null;index"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false"`
	RequiredBy      time.Time `gorm:"not null;index"`
	FulfilledAt     *time.Time
	AssignedUnits   pq.Int64Array `gorm:"type:bigint[];not null;default:'{}'"`
	DeliveryAddress string        `gorm:"not null"`
	PatientID       string
	Procedure       string
	Notes           string
}

// TableName overrides GORM's default naming.
func (BloodRequestDTO) TableName() string {
	return "blood_requests"
}

func fromDomain(aggregate *request.BloodRequest) BloodRequestDTO {
	units := aggregate.AssignedUnits()
	assigned := make(pq.Int64Array, len(units))
	for i, u := range units {
		assigned[i] = int64(u) //nolint:gosec // bit-preserving round trip with toDomain
	}

	return BloodRequestDTO{
		ID:              aggregate.ID(),
		RequesterID:     aggregate.RequesterID().String(),
		BloodType:       int(aggregate.BloodType()),
		QuantityMl:      aggregate.QuantityMl(),
		Urgency:         int(aggregate.Urgency()),
		Status:          int(aggregate.Status()),
		CreatedAt:       aggregate.CreatedAt(),
		RequiredBy:      aggregate.RequiredBy(),
		FulfilledAt:     aggregate.FulfilledAt(),
		AssignedUnits:   assigned,
		DeliveryAddress: aggregate.DeliveryAddress(),
		PatientID:       aggregate.Metadata().PatientID(),
		Procedure:       aggregate.Metadata().Procedure(),
		Notes:           aggregate.Metadata().Notes(),
	}
}

func toDomain(dto BloodRequestDTO) (*request.BloodRequest, error) {
	requester, err := kernel.NewIdentity(dto.RequesterID)
	if err != nil {
		return nil, err
	}

	units := make([]uint64, len(dto.AssignedUnits))
	for i, u := range dto.AssignedUnits {
		units[i] = uint64(u) //nolint:gosec // bit-preserving round trip with fromDomain
	}

	var fulfilledAt *time.Time
	if dto.FulfilledAt != nil {
		t := dto.FulfilledAt.UTC()
		fulfilledAt = &t
	}

	return request.RestoreBloodRequest(
		dto.ID,
		requester,
		request.BloodType(dto.BloodType),
		dto.QuantityMl,
		request.Urgency(dto.Urgency),
		request.Status(dto.Status),
		dto.CreatedAt.UTC(),
		dto.RequiredBy.UTC(),
		fulfilledAt,
		units,
		dto.DeliveryAddress,
		request.NewMetadata(dto.PatientID, dto.Procedure, dto.Notes),
	)
}
