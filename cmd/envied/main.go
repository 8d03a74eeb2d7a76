package main

import (
	"os"

	"github.com/Spill-App/envied-fork/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.InitCmd())
	rootCmd.AddCommand(commands.GenerateCmd())
	rootCmd.AddCommand(commands.WatchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
