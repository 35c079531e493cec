package kernel

import (
	"strings"

	"lifebank/internal/pkg/errs"
	"lifebank/internal/pkg/guard"
)

// ErrIdentityIsNotConstructed is returned when validating a zero-value Identity.
var ErrIdentityIsNotConstructed = errs.NewValueIsRequiredError("identity must be created via NewIdentity")

// Identity is the opaque identifier of a party acting on the system: a
// hospital requesting blood, the administrator, or a patient reference.
// Whether the invoker really controls an Identity is decided by an
// authenticator outside the domain; the domain only compares identities.
//
// The zero value is invalid. Use NewIdentity.
type Identity struct {
	value string
	guard guard.ConstructorGuard
}

// NewIdentity builds an Identity from its textual form. Leading and
// trailing whitespace is removed; an empty result is rejected.
//
// Example:
//
//	admin, err := kernel.NewIdentity("GADMIN...")
//	if err != nil {
//	    return err
//	}
func NewIdentity(value string) (Identity, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Identity{}, errs.NewValueIsRequiredError("identity")
	}
	return Identity{value: trimmed, guard: guard.NewConstructorGuard()}, nil
}

// MustNewIdentity is NewIdentity for compile-time constants and tests.
// It panics on invalid input.
func MustNewIdentity(value string) Identity {
	id, err := NewIdentity(value)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the textual form of the identity.
func (i Identity) String() string {
	return i.value
}

// IsEqual reports whether both identities denote the same party.
// Two zero values are never equal.
func (i Identity) IsEqual(other Identity) bool {
	return i.Validate() == nil && i.value == other.value
}

// Validate returns ErrIdentityIsNotConstructed for zero values.
func (i Identity) Validate() error {
	return i.guard.Validate(ErrIdentityIsNotConstructed)
}
