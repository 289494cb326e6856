package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sebastian/job-pipeline/internal/observability"
	"github.com/sebastian/job-pipeline/internal/rendering"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render CV and cover letter documents for tailored opportunities",
	Long:  "Runs the document stage: every opportunity with Status pending and Data-Status complete gets its CV and cover letter rendered to HTML and PDF, a todo entry appended, and Status advanced to processed.",
	RunE:  runGenerate,
}

var (
	generateConfigPath string
	generateOutputName string
	generateMaxItems   int
)

func init() {
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	generateCmd.Flags().StringVar(&generateOutputName, "output-name", "", "Candidate-name component of generated file names (overrides config)")
	generateCmd.Flags().IntVar(&generateMaxItems, "max-items", 0, "Item cap for this run (0 = all)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(generateConfigPath)
	if err != nil {
		return err
	}
	if generateOutputName != "" {
		cfg.OutputName = generateOutputName
	}
	if generateMaxItems > 0 {
		cfg.MaxItems = generateMaxItems
	}

	dir, err := openDirectory(cfg)
	if err != nil {
		return err
	}

	r, err := newGenerateRunner(cfg, dir, rendering.NewChromePDF())
	if err != nil {
		return err
	}

	sum, err := r.Run(context.Background())
	observability.NewPrinter(os.Stdout).PrintStageSummary("generate", sum)
	return err
}
