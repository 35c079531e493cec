// Package queries contains read-only operations over stored blood requests.
// Handlers read the blood_requests table directly through GORM and return
// flat views; they never load aggregates or open a unit of work.
package queries

import (
	"database/sql"
	"time"

	"lifebank/internal/core/domain/model/request"

	"github.com/lib/pq"
)

// BloodRequestView is the read model of a stored request.
type BloodRequestView struct {
	ID              uint64
	RequesterID     string
	BloodType       request.BloodType
	QuantityMl      int
	Urgency         request.Urgency
	Status          request.Status
	CreatedAt       time.Time
	RequiredBy      time.Time
	FulfilledAt     *time.Time
	AssignedUnits   []uint64
	DeliveryAddress string
	PatientID       string
	Procedure       string
	Notes           string
}

const requestColumns = `
	id,
	requester_id,
	blood_type,
	quantity_ml,
	urgency,
	status,
	created_at,
	required_by,
	fulfilled_at,
	assigned_units,
	delivery_address,
	patient_id,
	procedure,
	notes`

func scanRequestViews(rows *sql.Rows) ([]BloodRequestView, error) {
	views := make([]BloodRequestView, 0)

	for rows.Next() {
		var (
			view        BloodRequestView
			bloodType   int
			urgency     int
			status      int
			fulfilledAt sql.NullTime
			units       pq.Int64Array
			patientID   sql.NullString
			procedure   sql.NullString
			notes       sql.NullString
		)

		if err := rows.Scan(
			&view.ID,
			&view.RequesterID,
			&bloodType,
			&view.QuantityMl,
			&urgency,
			&status,
			&view.CreatedAt,
			&view.RequiredBy,
			&fulfilledAt,
			&units,
			&view.DeliveryAddress,
			&patientID,
			&procedure,
			&notes,
		); err != nil {
			return nil, err
		}

		view.BloodType = request.BloodType(bloodType)
		view.Urgency = request.Urgency(urgency)
		view.Status = request.Status(status)
		view.CreatedAt = view.CreatedAt.UTC()
		view.RequiredBy = view.RequiredBy.UTC()
		if fulfilledAt.Valid {
			t := fulfilledAt.Time.UTC()
			view.FulfilledAt = &t
		}
		view.AssignedUnits = make([]uint64, len(units))
		for i, u := range units {
			view.AssignedUnits[i] = uint64(u) //nolint:gosec // stored bit-for-bit from uint64
		}
		view.PatientID = patientID.String
		view.Procedure = procedure.String
		view.Notes = notes.String

		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
