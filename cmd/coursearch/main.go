// Package main provides the coursearch CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coursearch",
	Short: "Hybrid course catalog search service",
	Long: `coursearch serves hybrid (lexical + vector) search over a course
catalog backed by Redis, and indexes catalog rows from SQLite into the
search backend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
}
