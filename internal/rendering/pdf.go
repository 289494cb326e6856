package rendering

import (
	"context"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Renderer converts final HTML into PDF bytes. Implementations may fail on
// malformed markup.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ChromePDF renders documents through headless Chrome's print-to-PDF.
// This is a separate headless instance, not the user's logged-in browser.
type ChromePDF struct {
	Timeout time.Duration
}

// NewChromePDF returns a renderer with a sensible default timeout.
func NewChromePDF() *ChromePDF {
	return &ChromePDF{Timeout: 60 * time.Second}
}

// Render writes the HTML to a temp file, loads it in headless Chrome, and
// prints it to PDF.
func (r *ChromePDF) Render(ctx context.Context, html string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "job-pipeline-*.html")
	if err != nil {
		return nil, &RenderError{Message: "failed to create temp HTML file", Cause: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return nil, &RenderError{Message: "failed to write temp HTML file", Cause: err}
	}
	tmp.Close()

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "PDF conversion failed", Cause: err}
	}

	return pdf, nil
}
