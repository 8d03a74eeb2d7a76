package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFindSchemaFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.envied.yml"), "x")
	writeFile(t, filepath.Join(dir, "nested", "db.envied.yaml"), "x")
	writeFile(t, filepath.Join(dir, "envied.yml"), "x")
	writeFile(t, filepath.Join(dir, "other.yml"), "x")
	writeFile(t, filepath.Join(dir, ".hidden", "skip.envied.yml"), "x")
	writeFile(t, filepath.Join(dir, "vendor", "skip.envied.yml"), "x")

	schemas, err := findSchemaFiles(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "app.envied.yml"),
		filepath.Join(dir, "nested", "db.envied.yaml"),
	}, schemas)
}

func TestBaseEnvironSnapshot(t *testing.T) {
	t.Setenv("ENVIED_TEST_KEY", "from-process")

	environ, err := baseEnviron("")
	require.NoError(t, err)
	assert.Equal(t, "from-process", environ["ENVIED_TEST_KEY"])
}

func TestBaseEnvironOverlay(t *testing.T) {
	t.Setenv("ENVIED_TEST_KEY", "from-process")

	envFile := filepath.Join(t.TempDir(), ".env.ci")
	writeFile(t, envFile, "ENVIED_TEST_KEY=from-file\nEXTRA=only-in-file\n")

	environ, err := baseEnviron(envFile)
	require.NoError(t, err)

	// The file wins on collisions and contributes its own keys.
	assert.Equal(t, "from-file", environ["ENVIED_TEST_KEY"])
	assert.Equal(t, "only-in-file", environ["EXTRA"])

	// The process environment itself is untouched.
	assert.Equal(t, "from-process", os.Getenv("ENVIED_TEST_KEY"))
}

func TestBaseEnvironMissingFile(t *testing.T) {
	_, err := baseEnviron(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading env file")
}
