// Package browser drives the user's already-open Chrome session over the
// remote debugging protocol. The core contract is small: report what is
// focused, move focus forward, and send confirmable key presses.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// DefaultDebuggerURL is where a Chrome started with
// --remote-debugging-port=9222 listens.
const DefaultDebuggerURL = "http://127.0.0.1:9222"

// FocusedElement is a snapshot of document.activeElement.
type FocusedElement struct {
	Tag   string            `json:"tag"`
	Attrs map[string]string `json:"attrs"`
}

// Attr returns the named attribute, or "" when absent.
func (e FocusedElement) Attr(name string) string {
	return e.Attrs[name]
}

// Driver is the browser collaborator interface. All methods block until the
// browser acknowledges the action.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	ActiveElement(ctx context.Context) (FocusedElement, error)
	// ClosestAttr walks up from the focused element to the nearest ancestor
	// carrying the attribute and returns its value ("" when none).
	ClosestAttr(ctx context.Context, attr string) (string, error)
	// HasDescendant reports whether the focused element contains a node
	// matching the CSS selector.
	HasDescendant(ctx context.Context, selector string) (bool, error)
	// Links returns the hrefs of every element matching the selector.
	Links(ctx context.Context, selector string) ([]string, error)
	SendTab(ctx context.Context) error
	SendEnter(ctx context.Context) error
	SendEscape(ctx context.Context) error
	Type(ctx context.Context, text string) error
	// ClearInput selects all text in the focused input and deletes it.
	ClearInput(ctx context.Context) error
	Sleep(ctx context.Context, d time.Duration)
}

// ChromeDriver implements Driver against a live Chrome instance.
type ChromeDriver struct {
	ctx     context.Context
	cancels []context.CancelFunc
}

// Connect attaches to the running Chrome debugger. The browser keeps the
// user's session; nothing is launched.
func Connect(ctx context.Context, debuggerURL string) (*ChromeDriver, error) {
	if debuggerURL == "" {
		debuggerURL = DefaultDebuggerURL
	}

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, debuggerURL)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// An empty run forces the websocket handshake so connection failures
	// surface here, not on the first action.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("could not connect to Chrome at %s: %w", debuggerURL, err)
	}

	return &ChromeDriver{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{browserCancel, allocCancel},
	}, nil
}

// Close releases the debugger connection. The browser itself stays open.
func (c *ChromeDriver) Close() {
	for _, cancel := range c.cancels {
		cancel()
	}
}

func (c *ChromeDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(c.ctx, actions...)
}

// Navigate loads the URL in the attached tab.
func (c *ChromeDriver) Navigate(ctx context.Context, url string) error {
	return c.run(ctx, chromedp.Navigate(url))
}

// ActiveElement snapshots the currently focused DOM element.
func (c *ChromeDriver) ActiveElement(ctx context.Context) (FocusedElement, error) {
	const script = `(() => {
		const el = document.activeElement;
		if (!el) return {tag: "", attrs: {}};
		const attrs = {};
		for (const a of el.attributes) attrs[a.name] = a.value;
		return {tag: el.tagName.toLowerCase(), attrs: attrs};
	})()`

	var el FocusedElement
	if err := c.run(ctx, chromedp.Evaluate(script, &el)); err != nil {
		return FocusedElement{}, fmt.Errorf("failed to inspect focused element: %w", err)
	}
	return el, nil
}

// ClosestAttr resolves the attribute on the nearest ancestor of the focused
// element that carries it.
func (c *ChromeDriver) ClosestAttr(ctx context.Context, attr string) (string, error) {
	script := fmt.Sprintf(`(() => {
		const el = document.activeElement;
		if (!el || !el.closest) return "";
		const owner = el.closest(%q);
		return owner ? (owner.getAttribute(%q) || "") : "";
	})()`, "["+attr+"]", attr)

	var value string
	if err := c.run(ctx, chromedp.Evaluate(script, &value)); err != nil {
		return "", fmt.Errorf("failed to resolve ancestor attribute %s: %w", attr, err)
	}
	return value, nil
}

// HasDescendant reports whether the focused element contains a match for the
// selector.
func (c *ChromeDriver) HasDescendant(ctx context.Context, selector string) (bool, error) {
	script := fmt.Sprintf(`(() => {
		const el = document.activeElement;
		return !!(el && el.querySelector && el.querySelector(%q));
	})()`, selector)

	var found bool
	if err := c.run(ctx, chromedp.Evaluate(script, &found)); err != nil {
		return false, err
	}
	return found, nil
}

// Links collects hrefs for every element matching the selector.
func (c *ChromeDriver) Links(ctx context.Context, selector string) ([]string, error) {
	script := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%q)).map(a => a.href).filter(h => h)`, selector)

	var links []string
	if err := c.run(ctx, chromedp.Evaluate(script, &links)); err != nil {
		return nil, err
	}
	return links, nil
}

// SendTab moves focus forward one stop.
func (c *ChromeDriver) SendTab(ctx context.Context) error {
	return c.run(ctx, chromedp.KeyEvent(kb.Tab))
}

// SendEnter activates the focused element.
func (c *ChromeDriver) SendEnter(ctx context.Context) error {
	return c.run(ctx, chromedp.KeyEvent(kb.Enter))
}

// SendEscape dismisses the current dialog.
func (c *ChromeDriver) SendEscape(ctx context.Context) error {
	return c.run(ctx, chromedp.KeyEvent(kb.Escape))
}

// Type sends literal text to the focused element.
func (c *ChromeDriver) Type(ctx context.Context, text string) error {
	return c.run(ctx, chromedp.KeyEvent(text))
}

// ClearInput selects everything in the focused input and deletes it.
func (c *ChromeDriver) ClearInput(ctx context.Context) error {
	return c.run(ctx,
		chromedp.KeyEvent("a", chromedp.KeyModifiers(input.ModifierCtrl)),
		chromedp.KeyEvent(kb.Delete),
	)
}

// Sleep blocks for the pacing delay, returning early on cancellation.
func (c *ChromeDriver) Sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
