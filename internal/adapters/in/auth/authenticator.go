package auth

import (
	"context"
	"fmt"

	"lifebank/internal/core/domain/model/kernel"
	"lifebank/internal/core/domain/model/request"
)

// ContextAuthenticator accepts a claimed identity only when it equals the
// subject proven by the request's bearer token.
type ContextAuthenticator struct{}

func NewContextAuthenticator() ContextAuthenticator {
	return ContextAuthenticator{}
}

func (ContextAuthenticator) Authenticate(ctx context.Context, claimed kernel.Identity) error {
	if err := claimed.Validate(); err != nil {
		return fmt.Errorf("%w: %w", request.ErrUnauthorized, err)
	}

	subject, ok := SubjectFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: no verified token", request.ErrUnauthorized)
	}
	if subject != claimed.String() {
		return fmt.Errorf("%w: token subject does not match caller", request.ErrUnauthorized)
	}
	return nil
}
