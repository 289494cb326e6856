package social

import (
	"context"
	"fmt"

	"github.com/sebastian/job-pipeline/internal/browser"
)

// unreactedSelector marks a card whose reaction button has not been pressed.
const unreactedSelector = "svg[aria-label='Reaction button state: no reaction']"

// LikeCatchUpUpdates walks a catch-up page (job changes, work anniversaries,
// or education) and likes every un-reacted card, up to the per-run cap.
// The site flips the reaction state on like, so no dedup log is needed; a
// re-run simply finds nothing un-reacted.
func (n *Networker) LikeCatchUpUpdates(ctx context.Context, kind CatchUpKind) (int, error) {
	fmt.Printf("--- Liking %s updates ---\n", kind)
	if err := n.Driver.Navigate(ctx, kind.URL()); err != nil {
		return 0, fmt.Errorf("failed to open %s page: %w", kind, err)
	}
	n.settle(ctx, 5)

	liked := 0
	_, err := browser.Walk(ctx, n.Driver, browser.WalkOptions{
		MaxTabs: MaxTabsPerWalk,
		Pause:   n.pause() / 5,
		Predicate: func(ctx context.Context, el browser.FocusedElement, d browser.Driver) (bool, error) {
			return d.HasDescendant(ctx, unreactedSelector)
		},
		Action: func(ctx context.Context, el browser.FocusedElement, d browser.Driver) (bool, error) {
			if liked >= MaxActionsPerRun {
				fmt.Printf("Reached the limit of %d likes for this run. Stopping.\n", MaxActionsPerRun)
				return false, browser.ErrStopWalk
			}
			if err := d.SendEnter(ctx); err != nil {
				return false, err
			}
			liked++
			n.settle(ctx, 2)
			return true, nil
		},
	})
	if err != nil {
		return liked, err
	}

	if liked > 0 {
		fmt.Printf("Successfully liked %d %s updates.\n", liked, kind)
	} else {
		fmt.Printf("No new %s updates found to like.\n", kind)
	}
	return liked, nil
}

// LikeSearchResults walks a content-search results page and likes every post
// not yet recorded in the liked-posts log. Posts are identified by the URN
// on the nearest ancestor card; the URN is committed to the log immediately
// after the like lands.
func (n *Networker) LikeSearchResults(ctx context.Context, searchURL, keyword string) (int, error) {
	fmt.Printf("--- Liking search results for %q ---\n", keyword)
	if err := n.Driver.Navigate(ctx, searchURL); err != nil {
		return 0, fmt.Errorf("failed to open search results for %q: %w", keyword, err)
	}
	n.settle(ctx, 7)

	urns := n.LikedPosts.Load()
	seen := make(map[string]bool, len(urns))
	for _, urn := range urns {
		seen[urn] = true
	}

	liked := 0
	_, err := browser.Walk(ctx, n.Driver, browser.WalkOptions{
		MaxTabs: MaxTabsPerWalk,
		Pause:   n.pause() / 5,
		Predicate: func(ctx context.Context, el browser.FocusedElement, d browser.Driver) (bool, error) {
			return el.Attr("aria-label") == "React Like" && el.Attr("aria-pressed") == "false", nil
		},
		Action: func(ctx context.Context, el browser.FocusedElement, d browser.Driver) (bool, error) {
			urn, err := d.ClosestAttr(ctx, "data-urn")
			if err != nil {
				return false, err
			}
			if urn == "" {
				fmt.Println("Could not find post URN. Skipping.")
				return false, nil
			}
			if seen[urn] {
				fmt.Printf("Post %s already processed. Skipping.\n", urn)
				return false, nil
			}
			if liked >= MaxActionsPerRun {
				fmt.Printf("Liked %d posts for %q this run. Stopping.\n", MaxActionsPerRun, keyword)
				return false, browser.ErrStopWalk
			}

			fmt.Printf("Liking new post: %s\n", urn)
			n.settle(ctx, 5)
			if err := d.SendEnter(ctx); err != nil {
				return false, err
			}

			urns, err = n.LikedPosts.AppendAndSave(urns, urn)
			if err != nil {
				return false, fmt.Errorf("post %s liked but logging failed: %w", urn, err)
			}
			seen[urn] = true
			liked++
			n.settle(ctx, 5)
			return true, nil
		},
	})
	if err != nil {
		return liked, err
	}

	fmt.Printf("--- Search-result liking for %q complete (%d liked) ---\n", keyword, liked)
	return liked, nil
}
