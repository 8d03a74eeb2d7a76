package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/Spill-App/envied-fork/internal/generator"
	"github.com/Spill-App/envied-fork/internal/input"
	"github.com/Spill-App/envied-fork/internal/output"
	"github.com/spf13/cobra"
)

// InitCmd creates and returns the 'init' command for project setup
func InitCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create envied.yml and a starter schema",
		Long: `Set up envied in the current project.

Writes envied.yml with the generation settings and a starter schema
describing one Environment class. Existing files are never overwritten.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			className := "AppConfig"
			outputDir := "internal/env"
			pkg := "env"
			if !yes {
				className = input.Prompt("Class name", className)
				outputDir = input.Prompt("Output directory", outputDir)
				pkg = input.Prompt("Package name", pkg)
			}

			configExists := false
			if _, err := os.Stat("envied.yml"); err == nil {
				configExists = true
				if !input.Confirm("envied.yml already exists. Keep it and only add the schema?", false) {
					output.Info("Aborted")
					return
				}
			}

			schemaFile := generator.SnakeCase(className) + ".envied.yml"
			ops := initOps(className, outputDir, pkg, configExists)

			if err := generator.Execute(ctx, ops, generator.ExecuteOptions{
				Writer: cmd.OutOrStdout(),
			}); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Success("Project initialized")
			output.Info("Next steps:")
			output.Step("1. Declare your fields in " + schemaFile)
			output.Step("2. Put values in .env (and add it to .gitignore)")
			output.Step("3. Run: envied generate")
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept defaults without prompting")

	return cmd
}

// initOps builds the scaffold operations. When envied.yml already
// exists it stays untouched and only the starter schema is staged, so
// the write never trips the conflict check.
func initOps(className, outputDir, pkg string, configExists bool) []generator.Operation {
	var ops []generator.Operation
	if !configExists {
		ops = append(ops, &generator.WriteFileOp{
			Path:    "envied.yml",
			Content: []byte(projectConfig(outputDir, pkg)),
			Mode:    0644,
		})
	}
	ops = append(ops, &generator.WriteFileOp{
		Path:    generator.SnakeCase(className) + ".envied.yml",
		Content: []byte(starterSchema(className)),
		Mode:    0644,
	})
	return ops
}

func projectConfig(outputDir, pkg string) string {
	return fmt.Sprintf(`# envied project configuration
generate:
  schema_dir: .
  output: %s
  package: %s
`, outputDir, pkg)
}

func starterSchema(className string) string {
	return fmt.Sprintf(`apiVersion: v1
kind: Environment
name: %s
spec:
  path: .env
  fields:
    - name: api_key
      type: string
      obfuscate: true
    - name: base_url
      type: uri
    - name: max_retries
      type: int
      default: "3"
`, className)
}
