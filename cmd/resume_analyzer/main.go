// Package main provides the entry point for the résumé analyzer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	storageFlag string
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:           "resume_analyzer",
	Short:         "Résumé Analyzer",
	Long:          "Résumé Analyzer accepts PDF résumés, produces a structured analysis with feedback and keeps a browsable history of past analyses.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "Storage backend: memory, sqlite, redis or postgres (overrides STORAGE_BACKEND)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
