package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPascalCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"api_key", "APIKey"},
		{"base_url", "BaseURL"},
		{"baseUrl", "BaseURL"},
		{"max_retries", "MaxRetries"},
		{"HTTPServer", "HTTPServer"},
		{"user_id", "UserID"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, PascalCase(tt.input))
		})
	}
}

func TestCamelCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"api_key", "apiKey"},
		{"APIKey", "apiKey"},
		{"base_url", "baseURL"},
		{"MaxRetries", "maxRetries"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CamelCase(tt.input))
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"APIKey", "api_key"},
		{"baseUrl", "base_url"},
		{"AppConfig", "app_config"},
		{"already_snake", "already_snake"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.input))
		})
	}
}

func TestConstantCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"apiKey", "API_KEY"},
		{"base_url", "BASE_URL"},
		{"MaxRetries", "MAX_RETRIES"},
		{"port", "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ConstantCase(tt.input))
		})
	}
}

func TestRenderString(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderString("test", "Hello {{ .Name | pascalCase }}!", map[string]string{"Name": "api_key"})
	require.NoError(t, err)
	assert.Equal(t, "Hello APIKey!", string(out))
}

func TestRenderStringCaches(t *testing.T) {
	r := NewRenderer()

	first, err := r.RenderString("cached", "{{ .V }}", map[string]string{"V": "a"})
	require.NoError(t, err)
	second, err := r.RenderString("cached", "ignored on cache hit", map[string]string{"V": "b"})
	require.NoError(t, err)

	assert.Equal(t, "a", string(first))
	assert.Equal(t, "b", string(second))

	r.ClearCache()
	third, err := r.RenderString("cached", "fresh: {{ .V }}", map[string]string{"V": "c"})
	require.NoError(t, err)
	assert.Equal(t, "fresh: c", string(third))
}

func TestRenderStringParseError(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderString("bad", "{{ .Unclosed", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template")
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"has \"quotes\""`, Quote(`has "quotes"`))
}
