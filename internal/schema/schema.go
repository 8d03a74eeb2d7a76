package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition represents one parsed .envied.yml document: one annotated
// class with its declared fields and one or more environment
// occurrences.
type Definition struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
	Name       string `yaml:"name"`
	Spec       Spec   `yaml:"spec"`

	// SourcePath is the schema file this definition was parsed from.
	// Set by ParseFile, empty for in-memory parses.
	SourcePath string `yaml:"-"`
}

// Spec carries the class-level defaults, the environment occurrences,
// and the ordered field sequence.
type Spec struct {
	Path           string `yaml:"path,omitempty"`
	RequireEnvFile bool   `yaml:"require_env_file,omitempty"`
	Obfuscate      bool   `yaml:"obfuscate,omitempty"`
	Optional       bool   `yaml:"optional,omitempty"`
	Environment    bool   `yaml:"environment,omitempty"`
	Interpolate    *bool  `yaml:"interpolate,omitempty"` // defaults to true
	RawStrings     bool   `yaml:"raw_strings,omitempty"`
	Case           string `yaml:"case,omitempty"` // "", "none", or "constant"
	RandomSeed     *int64 `yaml:"random_seed,omitempty"`

	Environments []Occurrence `yaml:"environments,omitempty"`
	Fields       []Field      `yaml:"fields"`
}

// Occurrence is one annotation occurrence: an independently generated
// unit sharing the class's field sequence, with its own option
// overrides. An empty environments list means one implicit occurrence
// built entirely from class defaults.
type Occurrence struct {
	Name           string  `yaml:"name,omitempty"`
	Path           *string `yaml:"path,omitempty"`
	RequireEnvFile *bool   `yaml:"require_env_file,omitempty"`
	Obfuscate      *bool   `yaml:"obfuscate,omitempty"`
	Optional       *bool   `yaml:"optional,omitempty"`
	Environment    *bool   `yaml:"environment,omitempty"`
	Interpolate    *bool   `yaml:"interpolate,omitempty"`
	RawStrings     *bool   `yaml:"raw_strings,omitempty"`
	Case           *string `yaml:"case,omitempty"`
	RandomSeed     *int64  `yaml:"random_seed,omitempty"`
}

// Field is one declared configuration field. Pointer-typed flags are
// tri-state: nil inherits the occurrence/class default.
type Field struct {
	Name        string  `yaml:"name"`
	Type        string  `yaml:"type,omitempty"`
	Var         string  `yaml:"var,omitempty"` // explicit lookup key
	Default     *string `yaml:"default,omitempty"`
	Obfuscate   *bool   `yaml:"obfuscate,omitempty"`
	Optional    *bool   `yaml:"optional,omitempty"`
	Environment *bool   `yaml:"environment,omitempty"`
	Interpolate *bool   `yaml:"interpolate,omitempty"`
	Raw         *bool   `yaml:"raw,omitempty"`
	RandomSeed  *int64  `yaml:"random_seed,omitempty"`
}

// ParseFile reads and validates a schema file. A file may hold several
// YAML documents, one class each.
func ParseFile(path string) ([]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	defs, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, def := range defs {
		def.SourcePath = path
	}
	return defs, nil
}

// ParseBytes reads and validates schema definitions from bytes.
func ParseBytes(data []byte) ([]*Definition, error) {
	// First pass: parse with the node API to get line numbers
	lineMaps, err := collectLineMaps(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Second pass: strict decoding with KnownFields to catch typos
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var defs []*Definition
	for i := 0; ; i++ {
		var def Definition
		if err := decoder.Decode(&def); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse schema (check for unknown/misspelled fields): %w", err)
		}

		var lineMap map[string]int
		if i < len(lineMaps) {
			lineMap = lineMaps[i]
		}
		if err := ValidateWithLineNumbers(&def, lineMap); err != nil {
			return nil, err
		}
		defs = append(defs, &def)
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("schema contains no definitions")
	}
	return defs, nil
}

// collectLineMaps builds one field-path → line-number map per document.
func collectLineMaps(data []byte) ([]map[string]int, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var maps []map[string]int
	for {
		var root yaml.Node
		if err := decoder.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				return maps, nil
			}
			return nil, err
		}
		lineMap := make(map[string]int)
		extractLineNumbers(&root, "", lineMap)
		maps = append(maps, lineMap)
	}
}

// extractLineNumbers walks the YAML node tree and builds a map of field paths to line numbers
func extractLineNumbers(node *yaml.Node, path string, lineMap map[string]int) {
	if node == nil {
		return
	}

	if path != "" {
		lineMap[path] = node.Line
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			extractLineNumbers(node.Content[0], path, lineMap)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			newPath := key
			if path != "" {
				newPath = fmt.Sprintf("%s.%s", path, key)
			}
			extractLineNumbers(node.Content[i+1], newPath, lineMap)
		}
	case yaml.SequenceNode:
		for i, child := range node.Content {
			extractLineNumbers(child, fmt.Sprintf("%s.%d", path, i), lineMap)
		}
	}
}

// getLineNumber retrieves the line number for a given path
func getLineNumber(lineMap map[string]int, path string) int {
	if lineMap == nil {
		return 0
	}
	return lineMap[path]
}
