// Package main provides the fastlabor command: the My Jobs HTTP server and
// a terminal view of the same data.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "fastlabor",
	Short:         "FastLabor My Jobs service",
	Long:          "Shows a signed-in user the job postings and job searches they submitted to the FastLabor spreadsheet.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
