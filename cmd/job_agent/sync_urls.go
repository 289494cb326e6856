package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sebastian/job-pipeline/internal/dedup"
	"github.com/sebastian/job-pipeline/internal/runner"
	"github.com/sebastian/job-pipeline/internal/schemas"
)

var syncURLsCmd = &cobra.Command{
	Use:   "sync-urls",
	Short: "Rebuild the processed-URL log from existing opportunity folders",
	Long:  "Scans every opportunity folder, extracts the job post URL from its record, and merges the normalized URLs into the processed-URL log. Use after restoring folders or editing the log by hand.",
	RunE:  runSyncURLs,
}

var syncURLsConfigPath string

func init() {
	syncURLsCmd.Flags().StringVar(&syncURLsConfigPath, "config", "", "Path to config.json file")

	rootCmd.AddCommand(syncURLsCmd)
}

func runSyncURLs(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(syncURLsConfigPath)
	if err != nil {
		return err
	}

	dir, err := openDirectory(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "--- URL Log Sync Utility ---")

	store := dedup.NewTextStore(cfg.ProcessedURLsPath)
	found, total, err := dir.RebuildURLLog(store)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d URLs in opportunity folders.\n", found)
	fmt.Fprintf(out, "The log now holds %d unique URLs.\n", total)

	// Log health check alongside the sync: a corrupted birthday log fails
	// soft at runtime, so this is where it gets surfaced.
	if data, err := os.ReadFile(cfg.BirthdayLogPath); err == nil {
		if err := schemas.ValidateBirthdayLog(string(data)); err != nil {
			corrupt := &runner.CorruptStateError{Path: cfg.BirthdayLogPath, Cause: err}
			fmt.Fprintf(out, "WARNING: birthday log: %v; it will be treated as empty at runtime.\n", corrupt)
		} else {
			fmt.Fprintln(out, "Birthday log is valid.")
		}
	}

	return nil
}
