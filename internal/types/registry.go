// Package types holds the closed set of declared field types the
// generator understands, and their mapping onto Go.
package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Spill-App/envied-fork/internal/diag"
)

// Kind tags the declared type variants. The descriptor front end
// resolves the type string once; everything downstream branches on the
// tag, never on strings.
type Kind int

const (
	Int Kind = iota
	Double
	Num
	Bool
	URI
	DateTime
	String
	Dynamic
	Enum
)

// Info contains metadata about a declared type.
type Info struct {
	Kind       Kind
	Name       string // declared name, e.g. "int" or "LogLevel" for enums
	GoType     string // "int", "*url.URL", "time.Time", ...
	ImportPath string // "" for builtins
	Lazy       bool   // value is built by a runtime parse helper
}

// registry contains all non-enum declared types.
var registry = map[string]Info{
	"int":      {Kind: Int, Name: "int", GoType: "int"},
	"double":   {Kind: Double, Name: "double", GoType: "float64"},
	"num":      {Kind: Num, Name: "num", GoType: "float64"},
	"bool":     {Kind: Bool, Name: "bool", GoType: "bool"},
	"uri":      {Kind: URI, Name: "uri", GoType: "*url.URL", ImportPath: "net/url", Lazy: true},
	"datetime": {Kind: DateTime, Name: "datetime", GoType: "time.Time", ImportPath: "time", Lazy: true},
	"string":   {Kind: String, Name: "string", GoType: "string"},
	"dynamic":  {Kind: Dynamic, Name: "dynamic", GoType: "any"},
}

// Lookup retrieves type info by declared name.
func Lookup(name string) (Info, bool) {
	info, ok := registry[strings.ToLower(name)]
	return info, ok
}

// Names returns the supported non-enum type names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate resolves a field's declared type string, failing fast before
// any value resolution happens. A PascalCase name outside the registry
// is treated as a user-defined enum type declared in the output package.
//
// Validation does not depend on the obfuscate flag; only the diagnostic
// wording does.
func Validate(class, field, declared string, obfuscate bool) (Info, error) {
	if declared == "" {
		return Info{}, diag.NewField(diag.MissingExplicitType, class, field,
			"field declares no type; every field needs an explicit type")
	}

	if info, ok := Lookup(declared); ok {
		return info, nil
	}

	if isEnumName(declared) {
		return Info{Kind: Enum, Name: declared, GoType: declared}, nil
	}

	supported := strings.Join(Names(), ", ")
	var msg string
	if obfuscate {
		msg = fmt.Sprintf("type %q cannot be obfuscated (obfuscation supports %s, and enum types)", declared, supported)
	} else {
		msg = fmt.Sprintf("type %q is not supported (supported: %s, and enum types)", declared, supported)
	}
	return Info{}, diag.NewField(diag.UnsupportedType, class, field, msg)
}

// GoType returns the accessor return type, pointer-wrapped for optional
// fields. Types that are already pointers (uri) and dynamic stay as-is.
func GoType(info Info, optional bool) string {
	if !optional {
		return info.GoType
	}
	if strings.HasPrefix(info.GoType, "*") || info.GoType == "any" {
		return info.GoType
	}
	return "*" + info.GoType
}

// CollectImports gathers the unique imports the accessor signatures of
// the given types need, sorted.
func CollectImports(infos []Info) []string {
	set := make(map[string]bool)
	for _, info := range infos {
		if info.ImportPath != "" {
			set[info.ImportPath] = true
		}
	}
	imports := make([]string, 0, len(set))
	for imp := range set {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	return imports
}

// isEnumName reports whether a declared type names a user enum: an
// exported PascalCase identifier.
func isEnumName(s string) bool {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}
