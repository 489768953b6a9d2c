// Package guard provides a construction check for value objects.
// Embedding a ConstructorGuard in a struct makes zero-value instances
// distinguishable from instances built through their constructor, so commands
// and domain objects can reject accidental direct initialization.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is provided and the object was not built through its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// The zero value fails validation; only NewConstructorGuard produces a
// passing guard.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks its owner as properly constructed.
// Call it in the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the owner was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
