// Package env generates Go source units from environment schema
// definitions: one file per annotation occurrence, holding typed
// accessors for every resolved field, plus a shared runtime support
// file per output package.
package env

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Spill-App/envied-fork/internal/diag"
	"github.com/Spill-App/envied-fork/internal/envfile"
	"github.com/Spill-App/envied-fork/internal/generator"
	"github.com/Spill-App/envied-fork/internal/obfuscate"
	"github.com/Spill-App/envied-fork/internal/resolve"
	"github.com/Spill-App/envied-fork/internal/schema"
	"github.com/Spill-App/envied-fork/internal/types"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// supportFile is the per-package runtime support file holding the
// decode routine and the parse helpers the generated units call.
const supportFile = "envied.go"

// Generator turns one schema file into file operations.
type Generator struct {
	schemaPath string
	outputDir  string
	pkg        string

	// Seed pins the keystream seed for fields that don't declare one.
	// Nil means every such field gets a fresh seed per run.
	Seed *int64

	// Environ is the process environment snapshot used for resolution.
	// Nil means the real environment is snapshotted on Generate.
	Environ map[string]string

	renderer *generator.Renderer
}

// New creates a generator for one schema file.
func New(schemaPath, outputDir, pkg string) *Generator {
	return &Generator{
		schemaPath: schemaPath,
		outputDir:  outputDir,
		pkg:        pkg,
		renderer:   generator.NewRenderer(),
	}
}

// Generate parses the schema and produces one operation per class unit
// that resolved cleanly, plus one for the package support file. Units
// that fail contribute a diagnostic instead of operations; units in the
// same batch are independent, so the rest proceed.
func (g *Generator) Generate() ([]generator.Operation, []error) {
	defs, err := schema.ParseFile(g.schemaPath)
	if err != nil {
		return nil, []error{err}
	}

	environ := g.Environ
	if environ == nil {
		environ = environMap()
	}

	var ops []generator.Operation
	var errs []error
	supportStaged := false

	for _, def := range defs {
		if def.Kind != "Environment" {
			errs = append(errs, diag.New(diag.InvalidAnnotationTarget, def.Name,
				fmt.Sprintf("kind %q does not describe an environment class", def.Kind)))
			continue
		}

		for _, unit := range def.Units() {
			content, err := g.generateUnit(unit, environ)
			if err != nil {
				errs = append(errs, err)
				continue
			}

			op := &generateOp{}
			if !supportStaged {
				// The first unit carries the support file, so a unit
				// never lands without the helpers it calls.
				support, err := g.renderSupport()
				if err != nil {
					errs = append(errs, err)
					continue
				}
				op.files = append(op.files, stagedFile{
					path:    filepath.Join(g.outputDir, supportFile),
					content: support,
				})
				supportStaged = true
			}
			op.files = append(op.files, stagedFile{
				path:    filepath.Join(g.outputDir, generator.SnakeCase(unit.Name)+".envied.go"),
				content: content,
			})
			ops = append(ops, op)
		}
	}

	return ops, errs
}

// generateUnit validates, resolves, and renders one class unit.
func (g *Generator) generateUnit(unit schema.Unit, environ map[string]string) ([]byte, error) {
	// Env file paths are relative to the schema that names them.
	envPath := unit.Path
	if !filepath.IsAbs(envPath) {
		envPath = filepath.Join(filepath.Dir(g.schemaPath), envPath)
	}

	source, err := envfile.Load(envPath, unit.Class, unit.RequireEnvFile, environ)
	if err != nil {
		return nil, err
	}

	resolver := &resolve.Resolver{Class: unit.Class, Source: source, Environ: environ}

	data := unitData{
		Package:          g.pkg,
		Schema:           g.schemaPath,
		Source:           unit.Path,
		ClassName:        unit.Class,
		UnitName:         unit.Name,
		Shared:           unit.Shared,
		DeclareInterface: unit.Shared && unit.First,
	}

	var infos []types.Info
	for _, f := range unit.Fields {
		info, err := types.Validate(unit.Class, f.Name, f.Type, f.Obfuscate)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)

		value, err := resolver.Resolve(resolve.Request{
			Field:    f.Name,
			Key:      f.Key,
			Aliased:  f.Environment,
			Optional: f.Optional,
			Default:  f.Default,
		})
		if err != nil {
			return nil, err
		}

		fd, err := g.buildField(unit, f, info, value)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", unit.Class, f.Name, err)
		}
		data.Fields = append(data.Fields, fd)
		if fd.Obfuscated {
			data.NeedsSync = true
		}
	}

	data.Imports = types.CollectImports(infos)
	if data.NeedsSync {
		data.Imports = append(data.Imports, "sync")
		sort.Strings(data.Imports)
	}

	return g.renderer.RenderFS(templatesFS, "templates/unit.go.tmpl", data)
}

// buildField assembles the template data for one field accessor.
func (g *Generator) buildField(unit schema.Unit, f schema.ResolvedField, info types.Info, value resolve.Value) (fieldData, error) {
	fd := fieldData{
		MethodName: generator.PascalCase(f.Name),
		VarName:    generator.CamelCase(generator.SnakeCase(unit.Name) + "_" + f.Name),
		ReturnType: types.GoType(info, f.Optional),
	}

	if !value.Present {
		fd.Absent = true
		return fd, nil
	}

	text := value.Raw
	if f.Interpolate {
		text = value.Interpolated
	}

	if f.Obfuscate {
		expr, err := obfuscatedExpr(info, text, g.seedFor(f))
		if err != nil {
			return fieldData{}, err
		}
		fd.Obfuscated = true
		fd.Expr = wrapOptional(info, f.Optional, expr)
		return fd, nil
	}

	expr, err := plainExpr(info, text, f.Raw)
	if err != nil {
		return fieldData{}, err
	}
	fd.Expr = wrapOptional(info, f.Optional, expr)
	return fd, nil
}

// seedFor picks the keystream seed: the field's pinned seed, the
// generator-wide pin, or a fresh one.
func (g *Generator) seedFor(f schema.ResolvedField) int64 {
	if f.Seed != nil {
		return *f.Seed
	}
	if g.Seed != nil {
		return *g.Seed
	}
	return obfuscate.NewSeed()
}

// wrapOptional lifts a value expression to the pointer the optional
// accessor returns. uri is already a pointer and dynamic is already
// nilable, so they stay as-is.
func wrapOptional(info types.Info, optional bool, expr string) string {
	if !optional || info.Kind == types.URI || info.Kind == types.Dynamic {
		return expr
	}
	return "enviedPtr(" + expr + ")"
}

// renderSupport renders the per-package runtime support file.
func (g *Generator) renderSupport() ([]byte, error) {
	return g.renderer.RenderFS(templatesFS, "templates/support.go.tmpl", supportData{Package: g.pkg})
}

// environMap snapshots the process environment.
func environMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Template data structures

type unitData struct {
	Package          string
	Schema           string
	Source           string
	ClassName        string
	UnitName         string
	Shared           bool
	DeclareInterface bool
	NeedsSync        bool
	Imports          []string
	Fields           []fieldData
}

type fieldData struct {
	MethodName string
	VarName    string
	ReturnType string
	Absent     bool
	Obfuscated bool
	Expr       string
}

type supportData struct {
	Package string
}

// stagedFile is one pending output file.
type stagedFile struct {
	path    string
	content []byte
}

// generateOp writes a class unit's files through a transaction, so a
// failed write never leaves the unit half-emitted. Generated files are
// machine-owned and always rewritten.
type generateOp struct {
	files []stagedFile
}

func (op *generateOp) Validate(ctx context.Context, force bool) error {
	for _, f := range op.files {
		if f.content == nil {
			return fmt.Errorf("content is nil for file: %s", f.path)
		}
		if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", filepath.Dir(f.path), err)
		}
	}
	return nil
}

func (op *generateOp) Execute(ctx context.Context) error {
	tx := generator.NewTransaction()
	for _, f := range op.files {
		tx.AddFile(f.path, f.content, 0644)
	}
	return tx.Commit()
}

func (op *generateOp) Description() string {
	paths := make([]string, len(op.files))
	for i, f := range op.files {
		paths[i] = f.path
	}
	return fmt.Sprintf("Generate %s", strings.Join(paths, ", "))
}
