package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sebastian/job-pipeline/internal/dedup"
	"github.com/sebastian/job-pipeline/internal/llm"
	"github.com/sebastian/job-pipeline/internal/observability"
	"github.com/sebastian/job-pipeline/internal/rendering"
	"github.com/sebastian/job-pipeline/internal/scraping"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline end-to-end: scrape, tailor, generate",
	Long: `Runs the three pipeline stages sequentially: scrape new postings into
opportunity folders, tailor application data with Gemini, then render the
CV and cover letter documents.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath string
	runAPIKey     string
	runSkipScrape bool
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().BoolVar(&runSkipScrape, "skip-scrape", false, "Skip the scrape stage and process existing folders only")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(runConfigPath)
	if err != nil {
		return err
	}

	apiKey, err := resolveAPIKey(cfg, runAPIKey)
	if err != nil {
		return err
	}

	dir, err := openDirectory(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	printer := observability.NewPrinter(os.Stdout)

	if !runSkipScrape {
		if cfg.SearchURL == "" {
			return fmt.Errorf("search_url is required for the scrape stage (or pass --skip-scrape)")
		}
		pager, err := scraping.AttachPager(ctx, cfg.DebuggerURL)
		if err != nil {
			return err
		}
		scraper := &scraping.Scraper{
			Pager:     pager,
			Store:     dedup.NewTextStore(cfg.ProcessedURLsPath),
			Dir:       dir,
			SearchURL: cfg.SearchURL,
			MaxPages:  cfg.SearchPages,
		}
		scrapeSum, err := scraper.Run(ctx)
		pager.Close()
		printer.PrintScrapeSummary(scrapeSum)
		if err != nil {
			return fmt.Errorf("scrape stage failed: %w", err)
		}
	}

	client, err := llm.NewGeminiClient(ctx, apiKey, resolveModel(cfg, ""))
	if err != nil {
		return err
	}
	defer client.Close()

	tailorSum, err := newTailorRunner(cfg, dir, client).Run(ctx)
	printer.PrintStageSummary("tailor", tailorSum)
	if err != nil {
		return fmt.Errorf("tailor stage failed: %w", err)
	}

	generateRunner, err := newGenerateRunner(cfg, dir, rendering.NewChromePDF())
	if err != nil {
		return err
	}
	generateSum, err := generateRunner.Run(ctx)
	printer.PrintStageSummary("generate", generateSum)
	if err != nil {
		return fmt.Errorf("generate stage failed: %w", err)
	}

	return nil
}
