// Package testutil builds temporary envied projects for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestProject is a temporary project directory holding schemas, env
// files, and generated output.
type TestProject struct {
	Root string
	t    *testing.T
}

// NewTestProject creates a temporary project directory
func NewTestProject(t *testing.T) *TestProject {
	t.Helper()

	return &TestProject{
		Root: t.TempDir(),
		t:    t,
	}
}

// WriteSchema writes an *.envied.yml schema file and returns its path
func (p *TestProject) WriteSchema(name, content string) string {
	p.t.Helper()

	path := filepath.Join(p.Root, name+".envied.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		p.t.Fatalf("writing schema %s: %v", name, err)
	}
	return path
}

// WriteEnvFile writes an env file at a path relative to the project root
func (p *TestProject) WriteEnvFile(name, content string) string {
	p.t.Helper()

	path := filepath.Join(p.Root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		p.t.Fatalf("creating dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		p.t.Fatalf("writing env file %s: %v", name, err)
	}
	return path
}

// OutputDir returns a path under the project for generated files
func (p *TestProject) OutputDir() string {
	return filepath.Join(p.Root, "internal", "env")
}

// FileExists checks if a file exists in the project
func (p *TestProject) FileExists(path string) bool {
	p.t.Helper()

	_, err := os.Stat(filepath.Join(p.Root, path))
	return err == nil
}

// ReadFile reads a file from the project
func (p *TestProject) ReadFile(path string) string {
	p.t.Helper()

	content, err := os.ReadFile(filepath.Join(p.Root, path))
	if err != nil {
		p.t.Fatalf("reading %s: %v", path, err)
	}
	return string(content)
}
