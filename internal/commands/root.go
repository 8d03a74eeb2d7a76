package commands

import (
	envied "github.com/Spill-App/envied-fork"
	"github.com/Spill-App/envied-fork/internal/output"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the envied CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "envied",
		Short: "Typed, obfuscatable configuration from env files",
		Long: `Envied generates Go accessors for environment configuration.

Values are read at build time from env files and the process
environment, parsed against declared types, and baked into generated
source. Sensitive values can be obfuscated so the plaintext never
appears in the artifact.

Learn more: https://github.com/Spill-App/envied-fork`,
		Version: envied.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
