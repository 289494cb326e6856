package scraping

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	cardSelector       = "li.occludable-update"
	detailsSelector    = "div.jobs-details__main-content"
	nextButtonSelector = "button[aria-label='View next page']"
)

// ChromePager implements Pager against the user's live Chrome session, so
// the scrape runs with their logged-in cookies.
type ChromePager struct {
	ctx     context.Context
	cancels []context.CancelFunc

	// Settle is the wait after navigation and card clicks.
	Settle time.Duration
}

// AttachPager connects a pager to the running Chrome debugger.
func AttachPager(ctx context.Context, debuggerURL string) (*ChromePager, error) {
	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, debuggerURL)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("could not connect to Chrome at %s: %w", debuggerURL, err)
	}

	return &ChromePager{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{browserCancel, allocCancel},
		Settle:  2 * time.Second,
	}, nil
}

// Close releases the debugger connection.
func (p *ChromePager) Close() {
	for _, cancel := range p.cancels {
		cancel()
	}
}

func (p *ChromePager) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(p.ctx, actions...)
}

// Open loads the search URL and waits for the result list to render.
func (p *ChromePager) Open(ctx context.Context, url string) error {
	return p.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(cardSelector, chromedp.ByQuery),
		chromedp.Sleep(p.Settle),
	)
}

// Cards counts the result cards on the current page.
func (p *ChromePager) Cards(ctx context.Context) (int, error) {
	var count int
	err := p.run(ctx, chromedp.Evaluate(
		fmt.Sprintf(`document.querySelectorAll(%q).length`, cardSelector), &count))
	return count, err
}

// OpenCard scrolls the i-th card into view, clicks it, and captures the
// details panel once it renders.
func (p *ChromePager) OpenCard(ctx context.Context, i int) (string, string, error) {
	click := fmt.Sprintf(`(() => {
		const card = document.querySelectorAll(%q)[%d];
		if (!card) return false;
		card.scrollIntoView(true);
		card.click();
		return true;
	})()`, cardSelector, i)

	var clicked bool
	if err := p.run(ctx, chromedp.Evaluate(click, &clicked)); err != nil {
		return "", "", err
	}
	if !clicked {
		return "", "", fmt.Errorf("result card %d not found", i)
	}

	var html, pageURL string
	err := p.run(ctx,
		chromedp.Sleep(p.Settle),
		chromedp.WaitVisible(detailsSelector, chromedp.ByQuery),
		chromedp.OuterHTML(detailsSelector, &html, chromedp.ByQuery),
		chromedp.Location(&pageURL),
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to capture details panel: %w", err)
	}
	return html, pageURL, nil
}

// NextPage clicks the pagination control, reporting false on the last page.
func (p *ChromePager) NextPage(ctx context.Context) (bool, error) {
	var present bool
	err := p.run(ctx, chromedp.Evaluate(
		fmt.Sprintf(`!!document.querySelector(%q)`, nextButtonSelector), &present))
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}

	err = p.run(ctx,
		chromedp.ScrollIntoView(nextButtonSelector, chromedp.ByQuery),
		chromedp.Click(nextButtonSelector, chromedp.ByQuery),
		chromedp.Sleep(p.Settle),
		chromedp.WaitVisible(cardSelector, chromedp.ByQuery),
	)
	if err != nil {
		return false, fmt.Errorf("next-page click failed: %w", err)
	}
	return true, nil
}
