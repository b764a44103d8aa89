package keymap

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for registry operations.
var (
	// ErrUnknownAction indicates a binding referenced an unregistered action.
	ErrUnknownAction = errors.New("keymap: unknown action")

	// ErrDuplicateAction indicates an action id is already registered.
	ErrDuplicateAction = errors.New("keymap: action already registered")

	// ErrDuplicateBinding indicates a binding id is already registered.
	ErrDuplicateBinding = errors.New("keymap: binding already registered")

	// ErrBindingNotFound indicates no binding has the given id.
	ErrBindingNotFound = errors.New("keymap: binding not found")

	// ErrInvalidBinding indicates a binding is missing required fields.
	ErrInvalidBinding = errors.New("keymap: invalid binding")

	// ErrConflict matches every *ConflictError.
	ErrConflict = errors.New("keymap: binding conflict")

	// ErrInvalidTimeout indicates a non-positive sequence timeout.
	ErrInvalidTimeout = errors.New("keymap: timeout must be positive")
)

// ConflictError reports the bindings a new binding collides with.
type ConflictError struct {
	Binding   Binding
	Conflicts []Binding
}

// Error implements error.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("keymap: binding %q conflicts with [%s]",
		e.Binding.ID, strings.Join(e.IDs(), ", "))
}

// IDs returns the ids of the colliding bindings.
func (e *ConflictError) IDs() []string {
	return bindingIDs(e.Conflicts)
}

// Is makes errors.Is(err, ErrConflict) hold.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
