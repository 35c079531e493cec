package queries

import (
	"context"
	"fmt"
	"strconv"

	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetRequestQueryHandler reads a single request.
type GetRequestQueryHandler struct {
	db *gorm.DB
}

// NewGetRequestQueryHandler creates the handler.
func NewGetRequestQueryHandler(db *gorm.DB) GetRequestQueryHandler {
	return GetRequestQueryHandler{db: db}
}

// Handle returns the stored request or request.ErrRequestNotFound.
func (h GetRequestQueryHandler) Handle(ctx context.Context, query GetRequestQuery) (BloodRequestView, error) {
	if err := query.Validate(); err != nil {
		return BloodRequestView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+requestColumns+`
		FROM blood_requests
		WHERE id = ?
	`, query.RequestID()).Rows()
	if err != nil {
		return BloodRequestView{}, err
	}
	defer rows.Close()

	views, err := scanRequestViews(rows)
	if err != nil {
		return BloodRequestView{}, err
	}

	if len(views) == 0 {
		return BloodRequestView{}, fmt.Errorf("%w: %w", request.ErrRequestNotFound,
			errs.NewObjectNotFoundError("bloodRequest", strconv.FormatUint(query.RequestID(), 10)))
	}

	return views[0], nil
}
