package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/Spill-App/envied-fork/internal/generator"
	"github.com/Spill-App/envied-fork/internal/generators/env"
	"github.com/Spill-App/envied-fork/internal/output"
	"github.com/Spill-App/envied-fork/internal/project"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// WatchCmd creates and returns the 'watch' command for continuous generation
func WatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever schemas or env files change",
		Long: `Watch the schema directory and regenerate on change.

Schema files (*.envied.yml), env files (.env*), and envied.yml itself
all trigger a regeneration. Changes are debounced so editor save
bursts produce one run. Stop with Ctrl-C.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := project.Load()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			w, err := newSchemaWatcher(cfg, debounce)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			defer w.Close()

			output.Info(fmt.Sprintf("Watching %s for changes (debounce %s)", cfg.SchemaDir, debounce))

			// Initial run so the output is current before the first change.
			w.regenerate(ctx, cmd)

			w.run(ctx, cmd)
			output.Info("Watch stopped")
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "Quiet period before regenerating after a change")

	return cmd
}

// schemaWatcher regenerates on debounced file system events.
type schemaWatcher struct {
	cfg      *project.Config
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending time.Time // zero when nothing is queued
}

func newSchemaWatcher(cfg *project.Config, debounce time.Duration) (*schemaWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %w", err)
	}

	w := &schemaWatcher{cfg: cfg, watcher: watcher, debounce: debounce}
	if err := w.addRecursive(cfg.SchemaDir); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive watches dir and its subdirectories, skipping hidden
// directories, vendor trees, and the output directory (regeneration
// must not trigger itself).
func (w *schemaWatcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != dir && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
			return filepath.SkipDir
		}
		if sameDir(path, w.cfg.OutputDir) {
			return filepath.SkipDir
		}
		// Non-fatal, keep walking
		_ = w.watcher.Add(path)
		return nil
	})
}

func sameDir(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}

// run pumps watcher events until ctx is canceled.
func (w *schemaWatcher) run(ctx context.Context, cmd *cobra.Command) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addRecursive(event.Name)
					continue
				}
			}
			if !w.triggers(event.Name) {
				continue
			}
			output.Verbose(fmt.Sprintf("Change detected: %s", event.Name))
			w.mu.Lock()
			w.pending = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			output.Verbose(fmt.Sprintf("Watch error: %v", err))

		case <-ticker.C:
			w.mu.Lock()
			due := !w.pending.IsZero() && time.Since(w.pending) >= w.debounce
			if due {
				w.pending = time.Time{}
			}
			w.mu.Unlock()
			if due {
				w.regenerate(ctx, cmd)
			}
		}
	}
}

// triggers reports whether a change to path warrants regeneration.
func (w *schemaWatcher) triggers(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, ".envied.yml"), strings.HasSuffix(base, ".envied.yaml"):
		return true
	case base == "envied.yml":
		return true
	case strings.HasPrefix(base, ".env"):
		return true
	}
	return false
}

// regenerate runs one full generation pass. Failures are reported and
// watching continues; the next change gets another chance.
func (w *schemaWatcher) regenerate(ctx context.Context, cmd *cobra.Command) {
	schemas, err := findSchemaFiles(w.cfg.SchemaDir)
	if err != nil {
		output.Error(err.Error())
		return
	}
	if len(schemas) == 0 {
		output.Info(fmt.Sprintf("No *.envied.yml schema files under %s yet", w.cfg.SchemaDir))
		return
	}

	environ, err := baseEnviron(w.cfg.EnvFile)
	if err != nil {
		output.Error(err.Error())
		return
	}

	clean := true
	for _, schemaPath := range schemas {
		gen := env.New(schemaPath, w.cfg.OutputDir, w.cfg.Package)
		gen.Seed = w.cfg.Seed
		gen.Environ = environ

		ops, errs := gen.Generate()
		for _, genErr := range errs {
			output.Error(genErr.Error())
			clean = false
		}

		if err := generator.Execute(ctx, ops, generator.ExecuteOptions{
			Force:  true,
			Writer: cmd.OutOrStdout(),
		}); err != nil {
			output.Error(err.Error())
			clean = false
		}
	}

	if clean {
		output.Success(fmt.Sprintf("Regenerated %d schema(s) at %s", len(schemas), time.Now().Format("15:04:05")))
	}
}

func (w *schemaWatcher) Close() error {
	return w.watcher.Close()
}
