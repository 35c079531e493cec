package commands

import (
	"context"
	"errors"
	"fmt"

	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/core/ports"
	"lifebank/internal/pkg/errs"
)

func getRequest(ctx context.Context, repo ports.BloodRequestRepository, id uint64) (*request.BloodRequest, error) {
	aggregate, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %w", request.ErrRequestNotFound, err)
	}
	return aggregate, err
}
