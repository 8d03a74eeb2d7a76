// Package schema parses and validates .envied.yml descriptor files.
//
// A schema file declares one or more environment classes. Each class
// names its env file, the option defaults inherited by every field, the
// annotation occurrences (independently generated units), and the
// ordered field sequence. Parsing is strict: unknown YAML keys are
// rejected, and validation errors carry line numbers.
//
// The package also flattens definitions into Unit values, the option
// layering already applied, which is the form the generator consumes.
package schema
