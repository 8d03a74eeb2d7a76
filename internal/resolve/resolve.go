// Package resolve executes the value waterfall that turns a field
// descriptor into a resolved value, or into a diagnostic when no
// acceptable value exists.
package resolve

import (
	"fmt"

	"github.com/Spill-App/envied-fork/internal/diag"
	"github.com/Spill-App/envied-fork/internal/envfile"
)

// Value is the outcome of the waterfall for one field: present with its
// raw and interpolated text, or absent.
type Value struct {
	Raw          string
	Interpolated string
	Present      bool
}

// Request carries the resolution-relevant slice of a field descriptor.
type Request struct {
	Field    string  // descriptor name, for diagnostics
	Key      string  // lookup key (varName after case transform)
	Aliased  bool    // environment flag: env file holds an OS variable name
	Optional bool    // absent is acceptable
	Default  *string // fallback literal, direct mode only
}

// Resolver resolves fields against one env file source and a snapshot
// of the process environment. Both inputs are read-only; resolving the
// same request twice yields the same value.
type Resolver struct {
	Class   string
	Source  *envfile.Source
	Environ map[string]string
}

// Resolve runs the waterfall for one field.
//
// Direct mode precedence: env file entry, then OS environment, then the
// declared default. Aliased mode inverts the roles: the env file entry
// is the *name* of the OS variable to read, so a missing entry is an
// error (there is nothing to alias), and the default never applies.
func (r *Resolver) Resolve(req Request) (Value, error) {
	var v Value
	if req.Aliased {
		entry, ok := r.Source.Lookup(req.Key)
		if !ok {
			return Value{}, diag.NewField(diag.MissingIndirectionTarget, r.Class, req.Field,
				fmt.Sprintf("aliased key %q is not declared in the env file", req.Key))
		}
		osKey := entry.Raw
		if osv, ok := r.Environ[osKey]; ok {
			v = Value{Raw: osv, Interpolated: osv, Present: true}
		} else if !req.Optional {
			return Value{}, diag.NewField(diag.MissingRequiredEnvVar, r.Class, req.Field,
				fmt.Sprintf("environment variable %q (aliased by %q) is not set", osKey, req.Key))
		}
	} else {
		switch {
		case r.sourceHas(req.Key):
			entry, _ := r.Source.Lookup(req.Key)
			v = Value{Raw: entry.Raw, Interpolated: entry.Interpolated, Present: true}
		case r.environHas(req.Key):
			osv := r.Environ[req.Key]
			v = Value{Raw: osv, Interpolated: osv, Present: true}
		case req.Default != nil:
			v = Value{Raw: *req.Default, Interpolated: *req.Default, Present: true}
		}
	}

	if !v.Present && !req.Optional {
		return Value{}, diag.NewField(diag.MissingRequiredValue, r.Class, req.Field,
			fmt.Sprintf("no value for %q in the env file, the environment, or a default", req.Key))
	}
	return v, nil
}

func (r *Resolver) sourceHas(key string) bool {
	_, ok := r.Source.Lookup(key)
	return ok
}

func (r *Resolver) environHas(key string) bool {
	_, ok := r.Environ[key]
	return ok
}
