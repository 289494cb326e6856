package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sebastian/job-pipeline/internal/dedup"
	"github.com/sebastian/job-pipeline/internal/observability"
	"github.com/sebastian/job-pipeline/internal/scraping"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the configured job search and create opportunity folders",
	Long:  "Attaches to the running Chrome session, walks every page of the configured job search, and creates an opportunity folder for each new relevant posting. Requires Chrome started with --remote-debugging-port=9222.",
	RunE:  runScrape,
}

var (
	scrapeConfigPath  string
	scrapeSearchURL   string
	scrapePages       int
	scrapeDebuggerURL string
)

func init() {
	scrapeCmd.Flags().StringVar(&scrapeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	scrapeCmd.Flags().StringVar(&scrapeSearchURL, "search-url", "", "Job search results URL (overrides config)")
	scrapeCmd.Flags().IntVar(&scrapePages, "pages", 0, "Page limit for this scrape (0 = all pages)")
	scrapeCmd.Flags().StringVar(&scrapeDebuggerURL, "debugger-url", "", "Chrome remote debugging address (overrides config)")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(_ *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(scrapeConfigPath)
	if err != nil {
		return err
	}
	if scrapeSearchURL != "" {
		cfg.SearchURL = scrapeSearchURL
	}
	if scrapePages > 0 {
		cfg.SearchPages = scrapePages
	}
	if scrapeDebuggerURL != "" {
		cfg.DebuggerURL = scrapeDebuggerURL
	}
	if cfg.SearchURL == "" {
		return fmt.Errorf("search_url is required (config 'search_url' or --search-url flag)")
	}

	dir, err := openDirectory(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pager, err := scraping.AttachPager(ctx, cfg.DebuggerURL)
	if err != nil {
		return err
	}
	defer pager.Close()

	scraper := &scraping.Scraper{
		Pager:     pager,
		Store:     dedup.NewTextStore(cfg.ProcessedURLsPath),
		Dir:       dir,
		SearchURL: cfg.SearchURL,
		MaxPages:  cfg.SearchPages,
	}

	sum, err := scraper.Run(ctx)
	observability.NewPrinter(os.Stdout).PrintScrapeSummary(sum)
	return err
}
