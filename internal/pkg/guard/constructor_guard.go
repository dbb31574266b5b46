// Package guard implements the constructor-guard pattern: a small embedded
// marker that lets value objects, commands and queries detect whether they
// were created through their designated constructor or as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied and the object was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// The zero value fails validation, so structs embedding a guard cannot be
// used without going through their factory function.
//
// Example:
//
//	type UpdateOrderStatusCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewUpdateOrderStatusCommand(...) (UpdateOrderStatusCommand, error) {
//	    ...
//	    return UpdateOrderStatusCommand{..., guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c UpdateOrderStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the embedding object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built via its constructor.
// For zero-value guards it returns validationError, falling back to
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
