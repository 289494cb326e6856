package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sebastian/job-pipeline/internal/observability"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all opportunities for re-processing",
	Long: `Rewinds the whole pipeline: deletes every generated artifact (data.txt
and the CV/CL documents), resets Status and Data-Status to pending in every
opportunity folder, and clears the todo log.

This action is irreversible and asks for confirmation unless --yes is given.`,
	RunE: runReset,
}

var (
	resetConfigPath string
	resetYes        bool
)

func init() {
	resetCmd.Flags().StringVar(&resetConfigPath, "config", "", "Path to config.json file")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(resetConfigPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "--- Opportunity Reset Utility ---")
	fmt.Fprintln(out, "\nThis command will perform the following actions:")
	fmt.Fprintf(out, "  1. Iterate through all folders in '%s'.\n", cfg.OpportunitiesDir)
	fmt.Fprintln(out, "  2. Delete all 'data.txt' files.")
	fmt.Fprintln(out, "  3. Delete all generated CV and CL (.pdf, .html) files.")
	fmt.Fprintln(out, "  4. Reset 'Status' and 'Data-Status' to 'pending' in all records.")
	fmt.Fprintf(out, "  5. Clear all content from '%s'.\n", cfg.TodoPath)
	fmt.Fprintln(out, "\nThis action is irreversible.")

	if !resetYes {
		fmt.Fprint(out, "Are you sure you want to continue? (y/n): ")
		in := bufio.NewScanner(cmd.InOrStdin())
		if !in.Scan() || strings.ToLower(strings.TrimSpace(in.Text())) != "y" {
			fmt.Fprintln(out, "Operation cancelled by user.")
			return nil
		}
	}

	dir, err := openDirectory(cfg)
	if err != nil {
		return err
	}

	sum, err := dir.ResetAll(cfg.TodoPath)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintResetSummary(sum)
	fmt.Fprintln(out, "All opportunities are now ready to be re-processed by the pipeline.")
	return nil
}
