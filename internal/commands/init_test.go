package commands

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/Spill-App/envied-fork/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitOpsFreshProject(t *testing.T) {
	t.Chdir(t.TempDir())

	ops := initOps("AppConfig", "internal/env", "env", false)
	require.Len(t, ops, 2)

	var buf bytes.Buffer
	require.NoError(t, generator.Execute(context.Background(), ops, generator.ExecuteOptions{Writer: &buf}))

	assert.FileExists(t, "envied.yml")
	assert.FileExists(t, "app_config.envied.yml")

	config, err := os.ReadFile("envied.yml")
	require.NoError(t, err)
	assert.Contains(t, string(config), "output: internal/env")
	assert.Contains(t, string(config), "package: env")

	schema, err := os.ReadFile("app_config.envied.yml")
	require.NoError(t, err)
	assert.Contains(t, string(schema), "name: AppConfig")
}

func TestInitOpsKeepExistingConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("envied.yml", []byte("# hand-tuned\n"), 0644))

	// With a config already in place only the schema is staged, so the
	// batch passes conflict validation and the schema still lands.
	ops := initOps("AppConfig", "internal/env", "env", true)
	require.Len(t, ops, 1)

	var buf bytes.Buffer
	require.NoError(t, generator.Execute(context.Background(), ops, generator.ExecuteOptions{Writer: &buf}))

	assert.FileExists(t, "app_config.envied.yml")

	config, err := os.ReadFile("envied.yml")
	require.NoError(t, err)
	assert.Equal(t, "# hand-tuned\n", string(config), "existing config must stay untouched")
}
