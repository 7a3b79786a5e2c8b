// Package main provides the entry point for the HR dashboard service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hrdash",
	Short: "HR Dashboard service",
	Long:  "HR Dashboard loads a mock employee directory, enriches it with department, performance, project and feedback data, and serves grid, detail, bookmark and analytics views over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
