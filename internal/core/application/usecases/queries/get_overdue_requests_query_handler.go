package queries

import (
	"context"
	"time"

	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/core/ports"

	"gorm.io/gorm"
)

// OverdueRequestView is a request still awaiting fulfillment after its
// deadline.
type OverdueRequestView struct {
	BloodRequestView

	// TimeRemaining is required_by - now and always negative here.
	TimeRemaining time.Duration
	// SLABreached reports that the urgency's maximum fulfillment time has
	// elapsed since creation. Informational only.
	SLABreached bool
}

// GetOverdueRequestsQueryHandler finds Pending and Approved requests whose
// required_by is strictly before the clock's now.
type GetOverdueRequestsQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewGetOverdueRequestsQueryHandler(db *gorm.DB, clock ports.Clock) GetOverdueRequestsQueryHandler {
	return GetOverdueRequestsQueryHandler{db: db, clock: clock}
}

// Handle returns overdue requests ordered by required_by, then id.
func (h GetOverdueRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueRequestsQuery,
) ([]OverdueRequestView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+requestColumns+`
		FROM blood_requests
		WHERE status IN (?, ?)
		  AND required_by < ?
		ORDER BY required_by, id
	`, int(request.Pending), int(request.Approved), now).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views, err := scanRequestViews(rows)
	if err != nil {
		return nil, err
	}

	overdue := make([]OverdueRequestView, 0, len(views))
	for _, view := range views {
		overdue = append(overdue, OverdueRequestView{
			BloodRequestView: view,
			TimeRemaining:    request.TimeUntilDeadline(view.RequiredBy, now),
			SLABreached:      request.IsSLABreached(view.CreatedAt, view.Urgency, now),
		})
	}

	return overdue, nil
}
