package ports

import (
	"context"

	"lifebank/internal/core/domain/model/kernel"
)

// Authenticator proves that the invoker of the current call controls the
// claimed identity. It returns request.ErrUnauthorized otherwise.
type Authenticator interface {
	Authenticate(ctx context.Context, claimed kernel.Identity) error
}
