package http

import (
	"time"

	"lifebank/internal/core/application/usecases/commands"
	"lifebank/internal/core/application/usecases/queries"
	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/core/domain/model/request"
)

// Timestamps are Unix seconds throughout the API.

type CreateRequestBody struct {
	BloodType       string `json:"blood_type"`
	QuantityMl      int    `json:"quantity_ml"`
	Urgency         string `json:"urgency"`
	RequiredBy      int64  `json:"required_by"`
	DeliveryAddress string `json:"delivery_address"`
	PatientID       string `json:"patient_id"`
	Procedure       string `json:"procedure"`
	Notes           string `json:"notes"`
}

func (b CreateRequestBody) toCommand(caller kernel.Identity) (commands.CreateRequestCommand, error) {
	bloodType, err := request.ParseBloodType(b.BloodType)
	if err != nil {
		return commands.CreateRequestCommand{}, err
	}
	urgency, err := request.ParseUrgency(b.Urgency)
	if err != nil {
		return commands.CreateRequestCommand{}, err
	}

	return commands.NewCreateRequestCommand(
		caller,
		bloodType,
		b.QuantityMl,
		urgency,
		time.Unix(b.RequiredBy, 0).UTC(),
		b.DeliveryAddress,
		request.NewMetadata(b.PatientID, b.Procedure, b.Notes),
	)
}

type UpdateStatusBody struct {
	Status string `json:"status"`
}

func (b UpdateStatusBody) toCommand(caller kernel.Identity, id uint64) (commands.UpdateRequestStatusCommand, error) {
	status, err := request.ParseStatus(b.Status)
	if err != nil {
		return commands.UpdateRequestStatusCommand{}, err
	}
	return commands.NewUpdateRequestStatusCommand(caller, id, status)
}

type AssignUnitsBody struct {
	UnitIDs []uint64 `json:"unit_ids"`
}

type CreatedResponse struct {
	ID uint64 `json:"id"`
}

type RequestResponse struct {
	ID              uint64   `json:"id"`
	RequesterID     string   `json:"requester_id"`
	BloodType       string   `json:"blood_type"`
	QuantityMl      int      `json:"quantity_ml"`
	Urgency         string   `json:"urgency"`
	Status          string   `json:"status"`
	CreatedAt       int64    `json:"created_at"`
	RequiredBy      int64    `json:"required_by"`
	FulfilledAt     *int64   `json:"fulfilled_at"`
	AssignedUnits   []uint64 `json:"assigned_units"`
	DeliveryAddress string   `json:"delivery_address"`
	PatientID       string   `json:"patient_id,omitempty"`
	Procedure       string   `json:"procedure,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

func newRequestResponse(view queries.BloodRequestView) RequestResponse {
	var fulfilledAt *int64
	if view.FulfilledAt != nil {
		at := view.FulfilledAt.Unix()
		fulfilledAt = &at
	}

	units := view.AssignedUnits
	if units == nil {
		units = []uint64{}
	}

	return RequestResponse{
		ID:              view.ID,
		RequesterID:     view.RequesterID,
		BloodType:       view.BloodType.String(),
		QuantityMl:      view.QuantityMl,
		Urgency:         view.Urgency.String(),
		Status:          view.Status.String(),
		CreatedAt:       view.CreatedAt.Unix(),
		RequiredBy:      view.RequiredBy.Unix(),
		FulfilledAt:     fulfilledAt,
		AssignedUnits:   units,
		DeliveryAddress: view.DeliveryAddress,
		PatientID:       view.PatientID,
		Procedure:       view.Procedure,
		Notes:           view.Notes,
	}
}

type OverdueRequestResponse struct {
	RequestResponse

	TimeRemainingSeconds int64 `json:"time_remaining_seconds"`
	SLABreached          bool  `json:"sla_breached"`
}

func newOverdueRequestResponse(view queries.OverdueRequestView) OverdueRequestResponse {
	return OverdueRequestResponse{
		RequestResponse:      newRequestResponse(view.BloodRequestView),
		TimeRemainingSeconds: int64(view.TimeRemaining / time.Second),
		SLABreached:          view.SLABreached,
	}
}
