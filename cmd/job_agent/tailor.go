package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sebastian/job-pipeline/internal/llm"
	"github.com/sebastian/job-pipeline/internal/observability"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Generate tailored application data for pending opportunities",
	Long:  "Runs the AI data stage: every opportunity with Data-Status pending or error gets a data.txt generated from its job description by Gemini, then advances to complete.",
	RunE:  runTailor,
}

var (
	tailorConfigPath string
	tailorAPIKey     string
	tailorModel      string
	tailorMaxItems   int
)

func init() {
	tailorCmd.Flags().StringVar(&tailorConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	tailorCmd.Flags().StringVar(&tailorAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	tailorCmd.Flags().StringVar(&tailorModel, "model", "", "Gemini model name (overrides config)")
	tailorCmd.Flags().IntVar(&tailorMaxItems, "max-items", 0, "Item cap for this run (0 = all)")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(_ *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(tailorConfigPath)
	if err != nil {
		return err
	}
	if tailorMaxItems > 0 {
		cfg.MaxItems = tailorMaxItems
	}

	apiKey, err := resolveAPIKey(cfg, tailorAPIKey)
	if err != nil {
		return err
	}

	dir, err := openDirectory(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewGeminiClient(ctx, apiKey, resolveModel(cfg, tailorModel))
	if err != nil {
		return err
	}
	defer client.Close()

	sum, err := newTailorRunner(cfg, dir, client).Run(ctx)
	observability.NewPrinter(os.Stdout).PrintStageSummary("tailor", sum)
	return err
}
