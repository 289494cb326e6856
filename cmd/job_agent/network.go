package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sebastian/job-pipeline/internal/browser"
	"github.com/sebastian/job-pipeline/internal/dedup"
	"github.com/sebastian/job-pipeline/internal/observability"
	"github.com/sebastian/job-pipeline/internal/social"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Run the networking actions in the live browser session",
	Long:  "Wishes birthdays, likes catch-up updates (job changes, work anniversaries, education), likes posts from the configured content searches, and optionally shares a news article. Requires Chrome started with --remote-debugging-port=9222 and a logged-in session.",
	RunE:  runNetwork,
}

var (
	networkConfigPath    string
	networkDebuggerURL   string
	networkShareNews     bool
	networkSkipBirthdays bool
	networkSkipLikes     bool
)

func init() {
	networkCmd.Flags().StringVar(&networkConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	networkCmd.Flags().StringVar(&networkDebuggerURL, "debugger-url", "", "Chrome remote debugging address (overrides config)")
	networkCmd.Flags().BoolVar(&networkShareNews, "share-news", false, "Also share the first unread news article")
	networkCmd.Flags().BoolVar(&networkSkipBirthdays, "skip-birthdays", false, "Skip the birthday-wishing phase")
	networkCmd.Flags().BoolVar(&networkSkipLikes, "skip-likes", false, "Skip the catch-up and search-result liking phases")

	rootCmd.AddCommand(networkCmd)
}

func runNetwork(_ *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(networkConfigPath)
	if err != nil {
		return err
	}
	if networkDebuggerURL != "" {
		cfg.DebuggerURL = networkDebuggerURL
	}

	ctx := context.Background()
	driver, err := browser.Connect(ctx, cfg.DebuggerURL)
	if err != nil {
		return err
	}
	defer driver.Close()

	networker := &social.Networker{
		Driver:      driver,
		BirthdayLog: dedup.NewJSONStore[dedup.BirthdayEntry](cfg.BirthdayLogPath),
		NewsLog:     dedup.NewJSONStore[string](cfg.NewsLogPath),
		LikedPosts:  dedup.NewJSONStore[string](cfg.LikedPostsLogPath),
	}

	var sum observability.NetworkSummary

	if !networkSkipBirthdays {
		wished, err := networker.WishBirthdays(ctx)
		sum.Wished += wished
		if err != nil {
			return fmt.Errorf("birthday phase failed: %w", err)
		}
	}

	if !networkSkipLikes {
		for _, kind := range []social.CatchUpKind{
			social.JobChanges, social.WorkAnniversaries, social.EducationUpdates,
		} {
			liked, err := networker.LikeCatchUpUpdates(ctx, kind)
			sum.Liked += liked
			if err != nil {
				return fmt.Errorf("%s phase failed: %w", kind, err)
			}
		}

		for _, search := range cfg.LikeSearches {
			liked, err := networker.LikeSearchResults(ctx, search.URL, search.Keyword)
			sum.Liked += liked
			if err != nil {
				return fmt.Errorf("search liking for %q failed: %w", search.Keyword, err)
			}
		}
	}

	if networkShareNews {
		shared, err := networker.ShareNews(ctx)
		sum.SharedNews = shared
		if err != nil {
			return fmt.Errorf("news sharing failed: %w", err)
		}
	}

	observability.NewPrinter(os.Stdout).PrintNetworkSummary(sum)
	return nil
}
