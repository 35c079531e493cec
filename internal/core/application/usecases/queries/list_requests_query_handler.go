package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListRequestsQueryHandler lists requests through the indexed columns of
// blood_requests.
//
// Example:
//
//	critical := request.Critical
//	query, _ := NewListRequestsQuery(RequestFilter{Urgency: &critical}, 0)
//	views, err := handler.Handle(ctx, query)
type ListRequestsQueryHandler struct {
	db *gorm.DB
}

func NewListRequestsQueryHandler(db *gorm.DB) ListRequestsQueryHandler {
	return ListRequestsQueryHandler{db: db}
}

// Handle returns at most query.Limit() requests matching every set filter,
// ordered by id ascending.
func (h ListRequestsQueryHandler) Handle(ctx context.Context, query ListRequestsQuery) ([]BloodRequestView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()
	tx := h.db.WithContext(ctx).Table("blood_requests").Select(requestColumns)
	if filter.Requester != nil {
		tx = tx.Where("requester_id = ?", filter.Requester.String())
	}
	if filter.BloodType != nil {
		tx = tx.Where("blood_type = ?", int(*filter.BloodType))
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", int(*filter.Status))
	}
	if filter.Urgency != nil {
		tx = tx.Where("urgency = ?", int(*filter.Urgency))
	}

	rows, err := tx.Order("id").Limit(query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequestViews(rows)
}
