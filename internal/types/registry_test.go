package types

import (
	"testing"

	"github.com/Spill-App/envied-fork/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBuiltins(t *testing.T) {
	tests := []struct {
		declared string
		kind     Kind
		goType   string
		imp      string
	}{
		{declared: "int", kind: Int, goType: "int"},
		{declared: "double", kind: Double, goType: "float64"},
		{declared: "num", kind: Num, goType: "float64"},
		{declared: "bool", kind: Bool, goType: "bool"},
		{declared: "uri", kind: URI, goType: "*url.URL", imp: "net/url"},
		{declared: "datetime", kind: DateTime, goType: "time.Time", imp: "time"},
		{declared: "string", kind: String, goType: "string"},
		{declared: "dynamic", kind: Dynamic, goType: "any"},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			info, err := Validate("AppConfig", "field", tt.declared, false)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, info.Kind)
			assert.Equal(t, tt.goType, info.GoType)
			assert.Equal(t, tt.imp, info.ImportPath)
		})
	}
}

func TestValidateIsCaseInsensitive(t *testing.T) {
	info, err := Validate("AppConfig", "field", "DateTime", false)
	require.NoError(t, err)
	assert.Equal(t, DateTime, info.Kind)
}

func TestValidateEnum(t *testing.T) {
	info, err := Validate("AppConfig", "level", "LogLevel", false)
	require.NoError(t, err)
	assert.Equal(t, Enum, info.Kind)
	assert.Equal(t, "LogLevel", info.Name)
	assert.Equal(t, "LogLevel", info.GoType)
}

func TestValidateMissingType(t *testing.T) {
	_, err := Validate("AppConfig", "field", "", false)
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.MissingExplicitType))
}

func TestValidateUnsupportedType(t *testing.T) {
	_, err := Validate("AppConfig", "field", "list", false)
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.UnsupportedType))
	assert.Contains(t, err.Error(), "not supported")

	// Obfuscated fields get a message naming the real restriction.
	_, err = Validate("AppConfig", "field", "list", true)
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.UnsupportedType))
	assert.Contains(t, err.Error(), "cannot be obfuscated")
}

func TestGoTypeOptional(t *testing.T) {
	tests := []struct {
		declared string
		optional bool
		want     string
	}{
		{declared: "int", optional: false, want: "int"},
		{declared: "int", optional: true, want: "*int"},
		{declared: "string", optional: true, want: "*string"},
		{declared: "datetime", optional: true, want: "*time.Time"},
		// Already nilable types are not double-wrapped.
		{declared: "uri", optional: true, want: "*url.URL"},
		{declared: "dynamic", optional: true, want: "any"},
	}

	for _, tt := range tests {
		info, err := Validate("AppConfig", "f", tt.declared, false)
		require.NoError(t, err)
		assert.Equal(t, tt.want, GoType(info, tt.optional))
	}
}

func TestCollectImports(t *testing.T) {
	uri, _ := Validate("C", "f", "uri", false)
	dt, _ := Validate("C", "f", "datetime", false)
	str, _ := Validate("C", "f", "string", false)

	imports := CollectImports([]Info{dt, uri, uri, str})
	assert.Equal(t, []string{"net/url", "time"}, imports)
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "int")
	assert.Contains(t, names, "dynamic")
	assert.NotContains(t, names, "list")
}
