package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// findSchemaFiles walks dir for *.envied.yml schema files, skipping
// hidden directories and vendor trees.
func findSchemaFiles(dir string) ([]string, error) {
	var schemas []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".envied.yml") || strings.HasSuffix(d.Name(), ".envied.yaml") {
			schemas = append(schemas, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s for schemas: %w", dir, err)
	}
	return schemas, nil
}

// baseEnviron snapshots the process environment, layering envFile over
// it when one is configured. The file wins on key collisions; the
// process itself is never mutated.
func baseEnviron(envFile string) (map[string]string, error) {
	environ := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}

	if envFile == "" {
		return environ, nil
	}

	overlay, err := godotenv.Read(envFile)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", envFile, err)
	}
	for k, v := range overlay {
		environ[k] = v
	}
	return environ, nil
}
