package lanelet

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownRuleType is returned when a regulatory element references a
	// rule type name that has not been registered.
	ErrUnknownRuleType = errors.New("unknown rule type")
	// ErrInvariantViolation is returned when a required role of a regulatory
	// element is empty or a singular role is unset at construction.
	ErrInvariantViolation = errors.New("regulatory element invariant violation")
	// ErrUnsupportedFormat is returned when no registered handler matches a
	// file extension or handler name.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// ErrorMessages collects per-element diagnostics produced in robust mode.
// Each element that fails to parse or serialize contributes exactly one entry.
type ErrorMessages []string

func (e *ErrorMessages) addf(format string, args ...interface{}) {
	*e = append(*e, fmt.Sprintf(format, args...))
}

// ParseError describes a malformed element in an input file.
type ParseError struct {
	Location string
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Location, e.Message)
}

// WriteError describes an element that could not be serialized.
type WriteError struct {
	ElementID ID
	Message   string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("can not write element %d: %s", e.ElementID, e.Message)
}
