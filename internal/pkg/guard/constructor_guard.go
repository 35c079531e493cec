// Package guard provides ConstructorGuard, a marker that lets value objects,
// aggregates and commands detect that they were built by their constructor
// rather than declared as zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created through
// their constructor. The zero value reports the object as not constructed.
//
// Example usage:
//
//	var ErrUnitIDNotConstructed = errors.New("UnitID must be created via NewUnitID")
//
//	type UnitID struct {
//	    value uint64
//	    guard guard.ConstructorGuard
//	}
//
//	func (u UnitID) Validate() error {
//	    return u.guard.Validate(ErrUnitIDNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed. Call it from
// the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
