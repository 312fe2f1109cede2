package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the model layer. Callers match with errors.Is.
var (
	// ErrDuplicateID is returned when an entity with the same id is already
	// registered on the model.
	ErrDuplicateID = errors.New("model: duplicate entity id")

	// ErrUnknownNode is returned when a node reference cannot be resolved.
	ErrUnknownNode = errors.New("model: unknown node id")

	// ErrUnknownElement is returned when an element reference cannot be resolved.
	ErrUnknownElement = errors.New("model: unknown element id")

	// ErrUnknownMaterial is returned when a material reference cannot be resolved.
	ErrUnknownMaterial = errors.New("model: unknown material id")

	// ErrInvalidModel is returned by validation when the model is malformed
	// (NaN coordinates, wrong node counts, missing entities, ...).
	ErrInvalidModel = errors.New("model: validation failed")
)

// PropertyError reports a missing or out-of-range material or section
// property, naming the property so the caller can tell which input to fix.
type PropertyError struct {
	Property string
	Reason   string
}

func (e *PropertyError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("model: property %q is required", e.Property)
	}
	return fmt.Sprintf("model: property %q %s", e.Property, e.Reason)
}

// MissingProperty builds a PropertyError for an absent property.
func MissingProperty(name string) *PropertyError {
	return &PropertyError{Property: name}
}

// UnsupportedError reports a declared but unimplemented capability, such as a
// plate element formulation or a buckling analysis request.
type UnsupportedError struct {
	Capability string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("model: %s is not supported", e.Capability)
}

// Unsupported builds an UnsupportedError for the named capability.
func Unsupported(capability string) *UnsupportedError {
	return &UnsupportedError{Capability: capability}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidModel, fmt.Sprintf(format, args...))
}
