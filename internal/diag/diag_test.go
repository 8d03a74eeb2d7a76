package diag

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticError(t *testing.T) {
	d := NewField(MissingRequiredValue, "AppConfig", "api_key", "no value anywhere")
	assert.Equal(t, "missing required value: AppConfig.api_key: no value anywhere", d.Error())

	c := New(MissingEnvFile, "AppConfig", ".env does not exist")
	assert.Equal(t, "missing env file: AppConfig: .env does not exist", c.Error())
}

func TestIsUnwraps(t *testing.T) {
	d := NewField(UnsupportedType, "AppConfig", "items", "type \"list\" is not supported")
	wrapped := fmt.Errorf("generating AppConfig: %w", d)

	assert.True(t, Is(wrapped, UnsupportedType))
	assert.False(t, Is(wrapped, MissingEnvFile))
	assert.False(t, Is(fmt.Errorf("plain error"), UnsupportedType))
}
