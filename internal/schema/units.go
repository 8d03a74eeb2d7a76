package schema

import (
	"fmt"

	"github.com/Spill-App/envied-fork/internal/generator"
)

// Unit is one flattened annotation occurrence: the class name, the
// generated unit's name, its env file contract, and the field
// descriptors with every option default already applied. Units are the
// core's only input; how they were discovered is the front end's
// business.
type Unit struct {
	Class          string
	Name           string
	Path           string
	RequireEnvFile bool
	Shared         bool // more than one occurrence: units implement the class interface
	First          bool // first occurrence declares the shared interface
	Fields         []ResolvedField
}

// ResolvedField is a field descriptor with occurrence and class
// defaults folded in.
type ResolvedField struct {
	Name        string
	Type        string
	Key         string // lookup key: explicit var, or the (case-transformed) name
	Optional    bool
	Obfuscate   bool
	Environment bool
	Interpolate bool
	Raw         bool
	Default     *string
	Seed        *int64
}

// Units flattens the definition into its annotation occurrences. Zero
// declared occurrences produce one implicit unit from class defaults,
// so downstream logic branches only on the sequence length.
func (d *Definition) Units() []Unit {
	occs := d.Spec.Environments
	if len(occs) == 0 {
		occs = []Occurrence{{}}
	}

	shared := len(occs) > 1
	units := make([]Unit, 0, len(occs))
	for i, occ := range occs {
		name := occ.Name
		if name == "" {
			if shared {
				name = fmt.Sprintf("%s%d", d.Name, i+1)
			} else {
				name = d.Name
			}
		}

		unit := Unit{
			Class:          d.Name,
			Name:           name,
			Path:           orDefault(occ.Path, orString(d.Spec.Path, ".env")),
			RequireEnvFile: orBool(occ.RequireEnvFile, d.Spec.RequireEnvFile),
			Shared:         shared,
			First:          i == 0,
		}

		caseTransform := orDefault(occ.Case, d.Spec.Case)
		interpolate := true
		if d.Spec.Interpolate != nil {
			interpolate = *d.Spec.Interpolate
		}
		if occ.Interpolate != nil {
			interpolate = *occ.Interpolate
		}

		for _, f := range d.Spec.Fields {
			rf := ResolvedField{
				Name:        f.Name,
				Type:        f.Type,
				Key:         lookupKey(f, caseTransform),
				Optional:    orBool(f.Optional, orBool(occ.Optional, d.Spec.Optional)),
				Obfuscate:   orBool(f.Obfuscate, orBool(occ.Obfuscate, d.Spec.Obfuscate)),
				Environment: orBool(f.Environment, orBool(occ.Environment, d.Spec.Environment)),
				Interpolate: orBool(f.Interpolate, interpolate),
				Raw:         orBool(f.Raw, orBool(occ.RawStrings, d.Spec.RawStrings)),
				Default:     f.Default,
				Seed:        f.RandomSeed,
			}
			if rf.Seed == nil {
				rf.Seed = firstSeed(occ.RandomSeed, d.Spec.RandomSeed)
			}
			unit.Fields = append(unit.Fields, rf)
		}

		units = append(units, unit)
	}

	return units
}

// lookupKey derives the resolution key for a field: the explicit var
// wins; otherwise the field name, case-transformed when requested.
func lookupKey(f Field, caseTransform string) string {
	if f.Var != "" {
		return f.Var
	}
	if caseTransform == "constant" {
		return generator.ConstantCase(f.Name)
	}
	return f.Name
}

func orBool(override *bool, def bool) bool {
	if override != nil {
		return *override
	}
	return def
}

func orDefault(override *string, def string) string {
	if override != nil && *override != "" {
		return *override
	}
	return def
}

func orString(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

func firstSeed(seeds ...*int64) *int64 {
	for _, s := range seeds {
		if s != nil {
			return s
		}
	}
	return nil
}
