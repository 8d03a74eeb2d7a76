// Package diag defines the structured diagnostics the generator reports
// to its caller. Every failure is bound to the class (and, when known,
// the field) that caused it, so the CLI layer can report precisely and
// keep processing unrelated classes.
package diag

import (
	"errors"
	"fmt"
)

// Kind identifies the failure category.
type Kind int

const (
	// InvalidAnnotationTarget means the descriptor does not describe an
	// environment class (wrong kind).
	InvalidAnnotationTarget Kind = iota

	// MissingExplicitType means a field declares no type at all.
	MissingExplicitType

	// UnsupportedType means a field declares a type outside the
	// supported set.
	UnsupportedType

	// MissingEnvFile means a required env file does not exist.
	MissingEnvFile

	// MissingIndirectionTarget means an aliased field's key is not
	// declared in the env file, so there is no OS variable name to read.
	MissingIndirectionTarget

	// MissingRequiredEnvVar means an aliased field named an OS variable
	// that is not set, and the field is not optional.
	MissingRequiredEnvVar

	// MissingRequiredValue means the waterfall produced no value for a
	// non-optional field.
	MissingRequiredValue
)

var kindNames = map[Kind]string{
	InvalidAnnotationTarget:  "invalid annotation target",
	MissingExplicitType:      "missing explicit type",
	UnsupportedType:          "unsupported type",
	MissingEnvFile:           "missing env file",
	MissingIndirectionTarget: "missing indirection target",
	MissingRequiredEnvVar:    "missing required environment variable",
	MissingRequiredValue:     "missing required value",
}

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("diagnostic(%d)", int(k))
}

// Diagnostic is a single terminal failure, bound to the class unit (and
// optionally the field) that triggered it.
type Diagnostic struct {
	Kind    Kind
	Class   string
	Field   string
	Message string
}

// Error formats the diagnostic with its origin.
func (d *Diagnostic) Error() string {
	switch {
	case d.Field != "":
		return fmt.Sprintf("%s: %s.%s: %s", d.Kind, d.Class, d.Field, d.Message)
	case d.Class != "":
		return fmt.Sprintf("%s: %s: %s", d.Kind, d.Class, d.Message)
	default:
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
}

// New creates a class-level diagnostic.
func New(kind Kind, class, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Class: class, Message: message}
}

// NewField creates a field-level diagnostic.
func NewField(kind Kind, class, field, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Class: class, Field: field, Message: message}
}

// Is reports whether err is (or wraps) a diagnostic of the given kind.
func Is(err error, kind Kind) bool {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Kind == kind
	}
	return false
}
