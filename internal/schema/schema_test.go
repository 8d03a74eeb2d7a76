package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSchema = `apiVersion: v1
kind: Environment
name: AppConfig
spec:
  path: .env
  fields:
    - name: api_key
      type: string
      obfuscate: true
    - name: port
      type: int
      default: "8080"
`

func TestParseBytesValid(t *testing.T) {
	defs, err := ParseBytes([]byte(validSchema))
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, "v1", def.APIVersion)
	assert.Equal(t, "Environment", def.Kind)
	assert.Equal(t, "AppConfig", def.Name)
	assert.Equal(t, ".env", def.Spec.Path)
	require.Len(t, def.Spec.Fields, 2)
	assert.Equal(t, "api_key", def.Spec.Fields[0].Name)
	require.NotNil(t, def.Spec.Fields[0].Obfuscate)
	assert.True(t, *def.Spec.Fields[0].Obfuscate)
	require.NotNil(t, def.Spec.Fields[1].Default)
	assert.Equal(t, "8080", *def.Spec.Fields[1].Default)
}

func TestParseBytesMultiDocument(t *testing.T) {
	doc := validSchema + "---\n" + `apiVersion: v1
kind: Environment
name: SecondConfig
spec:
  fields:
    - name: url
      type: uri
`
	defs, err := ParseBytes([]byte(doc))
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "SecondConfig", defs[1].Name)
}

func TestParseBytesRejectsUnknownField(t *testing.T) {
	_, err := ParseBytes([]byte(`apiVersion: v1
kind: Environment
name: AppConfig
spec:
  fileds:
    - name: x
      type: string
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestParseBytesEmpty(t *testing.T) {
	_, err := ParseBytes([]byte(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no definitions")
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			name: "bad apiVersion",
			yaml: `apiVersion: v2
kind: Environment
name: AppConfig
spec:
  fields:
    - name: x
      type: string
`,
			wantMsg: "invalid apiVersion",
		},
		{
			name: "missing name",
			yaml: `apiVersion: v1
kind: Environment
spec:
  fields:
    - name: x
      type: string
`,
			wantMsg: "name is required",
		},
		{
			name: "lowercase class name",
			yaml: `apiVersion: v1
kind: Environment
name: appConfig
spec:
  fields:
    - name: x
      type: string
`,
			wantMsg: "PascalCase",
		},
		{
			name: "duplicate field names",
			yaml: `apiVersion: v1
kind: Environment
name: AppConfig
spec:
  fields:
    - name: x
      type: string
    - name: x
      type: int
`,
			wantMsg: "duplicate field name 'x'",
		},
		{
			name: "invalid case transform",
			yaml: `apiVersion: v1
kind: Environment
name: AppConfig
spec:
  case: screaming
  fields:
    - name: x
      type: string
`,
			wantMsg: "invalid case transform",
		},
		{
			name: "occurrence collides with class interface",
			yaml: `apiVersion: v1
kind: Environment
name: AppConfig
spec:
  environments:
    - name: AppConfig
    - name: ProdEnv
  fields:
    - name: x
      type: string
`,
			wantMsg: "collides with the shared interface",
		},
		{
			name: "duplicate occurrence names",
			yaml: `apiVersion: v1
kind: Environment
name: AppConfig
spec:
  environments:
    - name: DevEnv
    - name: DevEnv
  fields:
    - name: x
      type: string
`,
			wantMsg: "duplicate unit name 'DevEnv'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidationErrorLineNumbers(t *testing.T) {
	_, err := ParseBytes([]byte(`apiVersion: v2
kind: Environment
name: AppConfig
spec:
  fields:
    - name: x
      type: string
`))
	require.Error(t, err)

	verrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, verrs, 1)
	assert.Equal(t, 1, verrs[0].Line)
	assert.Equal(t, "apiVersion", verrs[0].Field)
}
