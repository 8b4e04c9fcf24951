package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/todoforge/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "todoforge",
		Short: "TodoForge API Server",
		Long:  `TodoForge is a multi-user todo REST API with JWT authentication and PostgreSQL persistence.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewTokenCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
