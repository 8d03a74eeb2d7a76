package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.SchemaDir)
	assert.Equal(t, "internal/env", cfg.OutputDir)
	assert.Equal(t, "env", cfg.Package)
	assert.Empty(t, cfg.EnvFile)
	assert.Nil(t, cfg.Seed)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
	require.NoError(t, os.WriteFile("envied.yml", []byte(`generate:
  schema_dir: config
  output: pkg/appenv
  package: appenv
  env_file: .env.ci
  seed: 42
`), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "config", cfg.SchemaDir)
	assert.Equal(t, "pkg/appenv", cfg.OutputDir)
	assert.Equal(t, "appenv", cfg.Package)
	assert.Equal(t, ".env.ci", cfg.EnvFile)
	require.NotNil(t, cfg.Seed)
	assert.EqualValues(t, 42, *cfg.Seed)
}

func TestLoadRejectsMissingSchemaDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile("envied.yml", []byte(`generate:
  schema_dir: does-not-exist
`), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile("envied.yml", []byte("generate: [not: a: map\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read envied.yml")
}
