package generator

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"unicode"
)

// Renderer handles template parsing and rendering with caching
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer with built-in helper functions
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template from a string
// The name is used for caching and error messages
func (r *Renderer) RenderString(name, templateStr string, data any) ([]byte, error) {
	cacheKey := "string:" + name

	r.mu.RLock()
	if tmpl, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return r.executeTemplate(tmpl, data)
	}
	r.mu.RUnlock()

	tmpl, err := template.New(name).Funcs(r.funcMap).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	r.mu.Lock()
	r.cache[cacheKey] = tmpl
	r.mu.Unlock()

	return r.executeTemplate(tmpl, data)
}

// RenderFS renders a template from an embedded filesystem
func (r *Renderer) RenderFS(fs embed.FS, path string, data any) ([]byte, error) {
	cacheKey := "fs:" + path

	r.mu.RLock()
	if tmpl, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return r.executeTemplate(tmpl, data)
	}
	r.mu.RUnlock()

	templateBytes, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template from fs '%s': %w", path, err)
	}

	tmpl, err := template.New(path).Funcs(r.funcMap).Parse(string(templateBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", path, err)
	}

	r.mu.Lock()
	r.cache[cacheKey] = tmpl
	r.mu.Unlock()

	return r.executeTemplate(tmpl, data)
}

// ClearCache clears the template cache (useful for testing)
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

// executeTemplate executes a parsed template with the given data
func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// defaultFuncMap returns the default template function map
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Case conversion
		"pascalCase":   PascalCase,   // api_key → APIKey
		"camelCase":    CamelCase,    // api_key → apiKey
		"snakeCase":    SnakeCase,    // APIKey → api_key
		"constantCase": ConstantCase, // apiKey → API_KEY

		// String manipulation
		"quote":     Quote, // test → "test"
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"join":      strings.Join,
		"hasPrefix": strings.HasPrefix,
	}
}

// PascalCase converts snake_case or camelCase to PascalCase, keeping
// common initialisms fully capitalized.
// Examples: api_key → APIKey, baseUrl → BaseURL
func PascalCase(s string) string {
	if s == "" {
		return ""
	}

	var out strings.Builder
	for _, word := range splitWords(s) {
		out.WriteString(capitalizeWord(word))
	}
	return out.String()
}

// CamelCase converts snake_case or PascalCase to camelCase.
// Examples: api_key → apiKey, APIKey → apiKey
func CamelCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}

	var out strings.Builder
	out.WriteString(strings.ToLower(words[0]))
	for _, word := range words[1:] {
		out.WriteString(capitalizeWord(word))
	}
	return out.String()
}

// SnakeCase converts PascalCase or camelCase to snake_case.
// Examples: APIKey → api_key, baseUrl → base_url
func SnakeCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

// ConstantCase converts any casing to SCREAMING_SNAKE_CASE. This is the
// case transform applied to field names when deriving lookup keys.
// Examples: apiKey → API_KEY, base_url → BASE_URL
func ConstantCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word)
	}
	return strings.Join(words, "_")
}

// Quote wraps a string in double quotes with Go escaping
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// splitWords breaks an identifier into its words, handling snake_case,
// camelCase, PascalCase, and acronym runs (HTTPServer → HTTP, Server).
func splitWords(s string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			if i > 0 && unicode.IsLower(runes[i-1]) {
				flush()
			} else if i > 0 && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return words
}

// capitalizeWord capitalizes a word with special handling for acronyms
func capitalizeWord(s string) string {
	if s == "" {
		return ""
	}

	// Common initialisms that should be all-caps in Go identifiers
	acronyms := map[string]string{
		"id":   "ID",
		"url":  "URL",
		"uri":  "URI",
		"http": "HTTP",
		"api":  "API",
		"uuid": "UUID",
		"sql":  "SQL",
		"json": "JSON",
		"xml":  "XML",
		"ip":   "IP",
		"tls":  "TLS",
		"db":   "DB",
		"os":   "OS",
	}

	lower := strings.ToLower(s)
	if acronym, ok := acronyms[lower]; ok {
		return acronym
	}

	return strings.ToUpper(s[:1]) + lower[1:]
}
