package schema

import (
	"bytes"
	"fmt"
)

// ValidationError represents a schema validation error with context
type ValidationError struct {
	Field      string // Field path (e.g., "spec.fields[0].name")
	Message    string // Error message
	Suggestion string // Helpful suggestion (optional)
	Line       int    // Line number in YAML (if available)
}

// Error returns a formatted error message
func (e *ValidationError) Error() string {
	var msg string
	if e.Line > 0 {
		msg = fmt.Sprintf("validation error at %s (line %d): %s", e.Field, e.Line, e.Message)
	} else {
		msg = fmt.Sprintf("validation error at %s: %s", e.Field, e.Message)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error returns all validation errors formatted with clear separation
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("found %d validation errors:\n", len(e)))
	for i, err := range e {
		buf.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return buf.String()
}

// Validate validates a parsed definition. Structural problems are
// reported here; type support and value resolution failures belong to
// the generation pass and surface as diagnostics there.
func Validate(def *Definition) error {
	return ValidateWithLineNumbers(def, nil)
}

// ValidateWithLineNumbers validates a parsed definition with optional line number information
func ValidateWithLineNumbers(def *Definition, lineMap map[string]int) error {
	var errs ValidationErrors

	if def.APIVersion == "" {
		errs = append(errs, ValidationError{
			Field:   "apiVersion",
			Message: "apiVersion is required",
			Line:    getLineNumber(lineMap, "apiVersion"),
		})
	} else if def.APIVersion != "v1" {
		errs = append(errs, ValidationError{
			Field:      "apiVersion",
			Message:    fmt.Sprintf("invalid apiVersion '%s'", def.APIVersion),
			Suggestion: "use 'v1'",
			Line:       getLineNumber(lineMap, "apiVersion"),
		})
	}

	if def.Kind == "" {
		errs = append(errs, ValidationError{
			Field:   "kind",
			Message: "kind is required",
			Line:    getLineNumber(lineMap, "kind"),
		})
	}
	// A non-Environment kind is not a structural error: the generator
	// rejects it as an invalid annotation target so the diagnostic is
	// bound to the class.

	if def.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "name is required",
			Line:    getLineNumber(lineMap, "name"),
		})
	} else if !isPascalCase(def.Name) {
		errs = append(errs, ValidationError{
			Field:      "name",
			Message:    fmt.Sprintf("name '%s' should be in PascalCase", def.Name),
			Suggestion: "use PascalCase like 'AppConfig' or 'ApiKeys'",
			Line:       getLineNumber(lineMap, "name"),
		})
	}

	if err := validateCase("spec.case", def.Spec.Case, getLineNumber(lineMap, "spec.case")); err != nil {
		errs = append(errs, *err)
	}

	// Validate fields: names present and unique. Type checks live in the
	// type validator so their diagnostics carry the right taxonomy.
	seen := make(map[string]int)
	for i, field := range def.Spec.Fields {
		fieldPath := fmt.Sprintf("spec.fields[%d]", i)

		if field.Name == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.name", fieldPath),
				Message: "field name is required",
				Line:    getLineNumber(lineMap, fmt.Sprintf("spec.fields.%d.name", i)),
			})
			continue
		}

		if first, dup := seen[field.Name]; dup {
			errs = append(errs, ValidationError{
				Field:      fmt.Sprintf("%s.name", fieldPath),
				Message:    fmt.Sprintf("duplicate field name '%s' (first defined at fields[%d])", field.Name, first),
				Suggestion: "each field must have a unique name",
				Line:       getLineNumber(lineMap, fmt.Sprintf("spec.fields.%d.name", i)),
			})
		} else {
			seen[field.Name] = i
		}
	}

	// Validate occurrences: multiple occurrences need distinct unit names.
	occNames := make(map[string]int)
	for i, occ := range def.Spec.Environments {
		occPath := fmt.Sprintf("spec.environments[%d]", i)

		if occ.Name != "" && !isPascalCase(occ.Name) {
			errs = append(errs, ValidationError{
				Field:      fmt.Sprintf("%s.name", occPath),
				Message:    fmt.Sprintf("unit name '%s' should be in PascalCase", occ.Name),
				Suggestion: "use PascalCase like 'DevEnv' or 'ProdEnv'",
				Line:       getLineNumber(lineMap, fmt.Sprintf("spec.environments.%d.name", i)),
			})
		}

		if occ.Case != nil {
			if err := validateCase(fmt.Sprintf("%s.case", occPath), *occ.Case,
				getLineNumber(lineMap, fmt.Sprintf("spec.environments.%d.case", i))); err != nil {
				errs = append(errs, *err)
			}
		}

		name := occ.Name
		if name == "" {
			name = fmt.Sprintf("%s%d", def.Name, i+1)
		}
		if first, dup := occNames[name]; dup {
			errs = append(errs, ValidationError{
				Field:      fmt.Sprintf("%s.name", occPath),
				Message:    fmt.Sprintf("duplicate unit name '%s' (first used at environments[%d])", name, first),
				Suggestion: "give each environment occurrence a unique name",
				Line:       getLineNumber(lineMap, fmt.Sprintf("spec.environments.%d.name", i)),
			})
		} else {
			occNames[name] = i
		}

		if len(def.Spec.Environments) > 1 && name == def.Name {
			errs = append(errs, ValidationError{
				Field:      fmt.Sprintf("%s.name", occPath),
				Message:    fmt.Sprintf("unit name '%s' collides with the shared interface named after the class", name),
				Suggestion: "rename the occurrence, e.g. 'DevEnv'",
				Line:       getLineNumber(lineMap, fmt.Sprintf("spec.environments.%d.name", i)),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateCase(path, value string, line int) *ValidationError {
	switch value {
	case "", "none", "constant":
		return nil
	default:
		return &ValidationError{
			Field:      path,
			Message:    fmt.Sprintf("invalid case transform '%s'", value),
			Suggestion: "use 'none' or 'constant'",
			Line:       line,
		}
	}
}

// isPascalCase checks if a string is in PascalCase
func isPascalCase(s string) bool {
	if s == "" {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}
