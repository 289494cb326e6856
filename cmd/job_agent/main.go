// Package main provides the entry point for the job pipeline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_agent",
	Short: "Job application pipeline agent",
	Long:  "job_agent scrapes job postings into opportunity folders, tailors application data with Gemini, renders CV and cover letter PDFs, and runs keyboard-driven networking actions in the user's live browser session.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
