package env

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Spill-App/envied-fork/internal/obfuscate"
	"github.com/Spill-App/envied-fork/internal/types"
)

// plainExpr converts resolved text into the Go expression embedded in a
// plain accessor. Each emission first runs the canonical parse for the
// declared type, so re-parsing the emitted literal reproduces the typed
// value exactly.
func plainExpr(info types.Info, text string, raw bool) (string, error) {
	switch info.Kind {
	case types.Int:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return "", fmt.Errorf("cannot parse %q as int: %w", text, err)
		}
		return strconv.FormatInt(v, 10), nil

	case types.Double, types.Num:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return "", fmt.Errorf("cannot parse %q as %s: %w", text, info.Name, err)
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return "", fmt.Errorf("%q has no literal representation", text)
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil

	case types.Bool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return "", fmt.Errorf("cannot parse %q as bool: %w", text, err)
		}
		return strconv.FormatBool(v), nil

	case types.URI:
		if _, err := url.Parse(text); err != nil {
			return "", fmt.Errorf("cannot parse %q as uri: %w", text, err)
		}
		return "enviedURL(" + strconv.Quote(text) + ")", nil

	case types.DateTime:
		if _, err := time.Parse(time.RFC3339, text); err != nil {
			return "", fmt.Errorf("cannot parse %q as datetime (RFC 3339): %w", text, err)
		}
		return "enviedTime(" + strconv.Quote(text) + ")", nil

	case types.Enum:
		return info.Name + "(" + strconv.Quote(text) + ")", nil

	case types.Dynamic:
		return strconv.Quote(text), nil

	default: // types.String
		return stringLiteral(text, raw), nil
	}
}

// obfuscatedExpr validates the text under the same canonical parse,
// encodes it under seed, and returns the decode expression evaluated
// lazily at artifact runtime.
func obfuscatedExpr(info types.Info, text string, seed int64) (string, error) {
	if err := checkParses(info, text); err != nil {
		return "", err
	}

	payload := obfuscate.Encode(text, seed)
	decode := fmt.Sprintf("enviedDecode(%d, []byte{%s})", payload.Seed, byteList(payload.Cipher))

	switch info.Kind {
	case types.Int:
		return "enviedInt(string(" + decode + "))", nil
	case types.Double, types.Num:
		return "enviedFloat(string(" + decode + "))", nil
	case types.Bool:
		return "enviedBool(string(" + decode + "))", nil
	case types.URI:
		return "enviedURL(string(" + decode + "))", nil
	case types.DateTime:
		return "enviedTime(string(" + decode + "))", nil
	case types.Enum:
		return info.Name + "(" + decode + ")", nil
	default: // String, Dynamic
		return "string(" + decode + ")", nil
	}
}

// checkParses runs the canonical parse for the declared type without
// emitting anything. Obfuscated values must be as well-formed as plain
// ones; a bad value should fail at generation time, not at first access.
func checkParses(info types.Info, text string) error {
	switch info.Kind {
	case types.Int:
		if _, err := strconv.ParseInt(text, 10, 64); err != nil {
			return fmt.Errorf("cannot parse %q as int: %w", text, err)
		}
	case types.Double, types.Num:
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return fmt.Errorf("cannot parse %q as %s: %w", text, info.Name, err)
		}
	case types.Bool:
		if _, err := strconv.ParseBool(text); err != nil {
			return fmt.Errorf("cannot parse %q as bool: %w", text, err)
		}
	case types.URI:
		if _, err := url.Parse(text); err != nil {
			return fmt.Errorf("cannot parse %q as uri: %w", text, err)
		}
	case types.DateTime:
		if _, err := time.Parse(time.RFC3339, text); err != nil {
			return fmt.Errorf("cannot parse %q as datetime (RFC 3339): %w", text, err)
		}
	}
	return nil
}

// stringLiteral renders a Go string literal. With raw requested, a
// backquoted literal is used so the text undergoes no escape
// processing; texts a raw literal cannot hold (backquotes, carriage
// returns) fall back to a quoted literal.
func stringLiteral(text string, raw bool) string {
	if raw && !strings.ContainsAny(text, "`\r") {
		return "`" + text + "`"
	}
	return strconv.Quote(text)
}

// byteList formats ciphertext as the inside of a []byte literal.
func byteList(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("0x%02x", b)
	}
	return strings.Join(parts, ", ")
}
