package social

import (
	"context"
	"fmt"

	"github.com/sebastian/job-pipeline/internal/browser"
)

// newsLinksSelector finds storyline links inside the feed's news module.
const newsLinksSelector = "div[data-view-name='news-module'] a[data-view-name='news-module-storyline-card-click']"

// ShareNews opens the feed, picks the first news-module article not yet in
// the news log, opens it, and activates its share menu. The article URL is
// logged once the share menu opens so the same story is never shared twice.
// Returns the shared URL, or "" when nothing unread was found.
func (n *Networker) ShareNews(ctx context.Context) (string, error) {
	fmt.Println("--- Sharing news ---")
	if err := n.Driver.Navigate(ctx, FeedURL); err != nil {
		return "", fmt.Errorf("failed to open feed: %w", err)
	}
	n.settle(ctx, 5)

	links, err := n.Driver.Links(ctx, newsLinksSelector)
	if err != nil {
		return "", fmt.Errorf("failed to read news module links: %w", err)
	}
	if len(links) == 0 {
		fmt.Println("Could not find the news module on the feed.")
		return "", nil
	}

	shared := n.NewsLog.Load()
	seen := make(map[string]bool, len(shared))
	for _, url := range shared {
		seen[url] = true
	}

	var unread string
	for _, url := range links {
		if !seen[url] {
			unread = url
			break
		}
	}
	if unread == "" {
		fmt.Println("No unread news articles found in the module.")
		return "", nil
	}

	fmt.Printf("Navigating to unread news article: %s\n", unread)
	if err := n.Driver.Navigate(ctx, unread); err != nil {
		return "", fmt.Errorf("failed to open news article: %w", err)
	}
	n.settle(ctx, 5)

	hits, err := browser.Walk(ctx, n.Driver, browser.WalkOptions{
		MaxTabs: MaxTabsPerWalk,
		Pause:   n.pause() / 5,
		Predicate: func(ctx context.Context, el browser.FocusedElement, d browser.Driver) (bool, error) {
			return el.Attr("aria-label") == "Open share menu", nil
		},
		Action: func(ctx context.Context, el browser.FocusedElement, d browser.Driver) (bool, error) {
			if err := d.SendEnter(ctx); err != nil {
				return false, err
			}
			fmt.Println("Opened the share menu.")
			return true, browser.ErrStopWalk
		},
	})
	if err != nil {
		return "", err
	}
	if hits == 0 {
		fmt.Println("Could not find the share button on the news page.")
		return "", nil
	}

	if _, err := n.NewsLog.AppendAndSave(shared, unread); err != nil {
		return unread, fmt.Errorf("share menu opened but logging failed: %w", err)
	}
	fmt.Printf("Logged %s as processed.\n", unread)
	return unread, nil
}
