package generator

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions controls how a batch of operations runs.
type ExecuteOptions struct {
	// DryRun reports what would be written without touching the disk.
	DryRun bool
	// Force lets operations overwrite files they would otherwise refuse.
	Force bool
	// Writer receives the per-operation progress lines. Nil means stdout.
	Writer io.Writer
}

// Execute runs a batch of operations in two phases: every operation is
// validated up front, and only a fully valid batch is applied. A batch
// that fails validation leaves the project untouched.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	for _, op := range ops {
		if opts.DryRun {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
			continue
		}
		if err := op.Execute(ctx); err != nil {
			return fmt.Errorf("%s: %w", op.Description(), err)
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}

	return nil
}
