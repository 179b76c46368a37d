package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrStyleDatabaseRequired is returned when a unit (viewport or font
	// relative) or a system font can't be resolved without a style database.
	// The resolution may succeed once a database is supplied.
	ErrStyleDatabaseRequired = errors.New("style database required")

	// ErrVariableCycle is returned when custom properties reference each other.
	ErrVariableCycle = errors.New("cycle in custom properties")

	// ErrAmplification is returned when the substitution of custom properties
	// produces too many tokens, or nests too deeply.
	ErrAmplification = errors.New("custom property expansion too large")
)

// ResolutionError is returned when the computed value of
// a property can't be resolved.
type ResolutionError struct {
	Property string
	Err      error
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("can't resolve %s: %s", e.Property, e.Err)
}

func (e ResolutionError) Unwrap() error { return e.Err }

// PolicyError is returned when an attr() function reads an attribute
// which is not allowed for the property.
type PolicyError struct {
	Attribute string
	Element   string
	Property  string
}

func (e PolicyError) Error() string {
	return fmt.Sprintf("attr(%s) on <%s> is not allowed in %s", e.Attribute, e.Element, e.Property)
}
