package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/Spill-App/envied-fork/internal/generator"
	"github.com/Spill-App/envied-fork/internal/generators/env"
	"github.com/Spill-App/envied-fork/internal/output"
	"github.com/Spill-App/envied-fork/internal/project"
	"github.com/spf13/cobra"
)

// GenerateCmd creates and returns the 'generate' command
func GenerateCmd() *cobra.Command {
	var dryRun bool
	var outputDir, pkg, envFile string
	var seed int64

	cmd := &cobra.Command{
		Use:   "generate [schema files...]",
		Short: "Generate typed accessors from *.envied.yml schemas",
		Long: `Generate Go source from envied schema files.

With no arguments, every *.envied.yml under the project's schema
directory is processed. Each Environment class produces one generated
file per declared occurrence plus a shared runtime support file in the
output package. Generated files are machine-owned and always rewritten.

Examples:
  envied generate
  envied generate config/app.envied.yml
  envied generate --env-file .env.production
  envied generate --seed 42 --dry-run`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			cfg, err := project.Load()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
			if cmd.Flags().Changed("output") {
				cfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("package") {
				cfg.Package = pkg
			}
			if cmd.Flags().Changed("env-file") {
				cfg.EnvFile = envFile
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = &seed
			}

			schemas := args
			if len(schemas) == 0 {
				schemas, err = findSchemaFiles(cfg.SchemaDir)
				if err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
			}
			if len(schemas) == 0 {
				output.Error(fmt.Sprintf("no *.envied.yml schema files found under %s", cfg.SchemaDir))
				output.Info("Create one with: envied init")
				os.Exit(1)
			}

			environ, err := baseEnviron(cfg.EnvFile)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			failed := false
			for _, schemaPath := range schemas {
				output.Verbose(fmt.Sprintf("Generating from %s (dry-run=%v)", schemaPath, dryRun))

				gen := env.New(schemaPath, cfg.OutputDir, cfg.Package)
				gen.Seed = cfg.Seed
				gen.Environ = environ

				ops, errs := gen.Generate()
				for _, genErr := range errs {
					output.Error(genErr.Error())
					failed = true
				}

				// Generated files are machine-owned, so conflicts never block.
				if err := generator.Execute(ctx, ops, generator.ExecuteOptions{
					DryRun: dryRun,
					Force:  true,
					Writer: cmd.OutOrStdout(),
				}); err != nil {
					output.Error(err.Error())
					failed = true
					continue
				}

				if !dryRun && len(ops) > 0 {
					output.Success(fmt.Sprintf("Generated %s", schemaPath))
				}
			}

			if failed {
				os.Exit(1)
			}
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "\n✓ Dry-run complete. Run without --dry-run to create files.")
			}
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without creating files")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory for generated files")
	cmd.Flags().StringVar(&pkg, "package", "", "Package name for generated files")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Env file layered over the process environment during resolution")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Pin the obfuscation keystream seed for reproducible output")

	return cmd
}
