// Package envfile loads dotenv-style files into the key → value mapping
// the resolver consumes. Every entry keeps two flavors of its value: the
// raw text as written (after quote and escape processing) and the
// interpolated text with ${VAR} references expanded.
package envfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/Spill-App/envied-fork/internal/diag"
)

// Entry is one parsed value pair.
type Entry struct {
	Raw          string // value before ${VAR} expansion
	Interpolated string // value after expansion
}

// Source is an ordered, read-only key → Entry mapping.
type Source struct {
	entries map[string]Entry
	keys    []string
}

// Lookup returns the entry for key, if declared.
func (s *Source) Lookup(key string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	e, ok := s.entries[key]
	return e, ok
}

// Keys returns the declared keys in file order.
func (s *Source) Keys() []string {
	if s == nil {
		return nil
	}
	return s.keys
}

// Len returns the number of declared keys.
func (s *Source) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Load reads and parses the env file at path. A missing file is a
// MissingEnvFile diagnostic when required, and an empty source
// otherwise. Interpolation references resolve against earlier entries
// in the same file first, then against environ.
func Load(path, class string, required bool, environ map[string]string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if required {
				return nil, diag.New(diag.MissingEnvFile, class,
					fmt.Sprintf("required env file %q does not exist", path))
			}
			return &Source{entries: map[string]Entry{}}, nil
		}
		return nil, fmt.Errorf("reading env file %q: %w", path, err)
	}
	return Parse(data, environ)
}

// Parse parses dotenv content. Supported syntax: blank lines, `#`
// comments, optional `export ` prefixes, KEY=VALUE with single-quoted
// (verbatim, never interpolated), double-quoted (escape sequences +
// interpolation), and bare values (trimmed, inline ` #` comment
// stripped, interpolated). An inline comment may also follow a closing
// quote; anything else after one is a parse error.
func Parse(data []byte, environ map[string]string) (*Source, error) {
	src := &Source{entries: map[string]Entry{}}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '=' in %q", i+1, line)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", i+1)
		}
		value = strings.TrimSpace(value)

		var entry Entry
		switch {
		case len(value) >= 1 && value[0] == '\'':
			inner, rest, err := splitQuoted(value, '\'')
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			if err := checkTrailer(rest); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			entry = Entry{Raw: inner, Interpolated: inner}
		case len(value) >= 1 && value[0] == '"':
			inner, rest, err := splitQuoted(value, '"')
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			if err := checkTrailer(rest); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			raw, err := unescape(inner)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			entry = Entry{Raw: raw, Interpolated: src.expand(raw, environ)}
		default:
			if idx := strings.Index(value, " #"); idx >= 0 {
				value = strings.TrimSpace(value[:idx])
			}
			entry = Entry{Raw: value, Interpolated: src.expand(value, environ)}
		}

		if _, seen := src.entries[key]; !seen {
			src.keys = append(src.keys, key)
		}
		src.entries[key] = entry
	}

	return src, nil
}

// expand substitutes $VAR and ${VAR} references. Earlier entries of the
// same file win over the process environment; unknown references expand
// to the empty string, matching os.Expand semantics.
func (s *Source) expand(value string, environ map[string]string) string {
	return os.Expand(value, func(name string) string {
		if e, ok := s.entries[name]; ok {
			return e.Interpolated
		}
		return environ[name]
	})
}

// splitQuoted splits a value opening with quote into the text inside
// the quotes and whatever follows the closing quote. Backslash escapes
// only apply inside double quotes.
func splitQuoted(s string, quote byte) (inner, rest string, err error) {
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '\\' && quote == '"' {
			i++
			continue
		}
		if c == quote {
			return s[1:i], s[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated %c-quoted value", quote)
}

// checkTrailer validates the text after a closing quote. Only
// whitespace and an inline comment may follow.
func checkTrailer(rest string) error {
	rest = strings.TrimSpace(rest)
	if rest == "" || strings.HasPrefix(rest, "#") {
		return nil
	}
	return fmt.Errorf("unexpected text %q after closing quote", rest)
}

// unescape processes the escape sequences valid inside double quotes.
func unescape(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("dangling escape at end of %q", s)
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			return "", fmt.Errorf("unknown escape sequence \\%c", s[i])
		}
	}
	return b.String(), nil
}
