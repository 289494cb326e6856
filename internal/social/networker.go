// Package social implements the keyboard-driven networking actions: birthday
// wishes, catch-up likes, news sharing, and search-result likes. Every action
// runs against the user's live browser session through the browser.Driver.
package social

import (
	"context"
	"strings"
	"time"

	"github.com/sebastian/job-pipeline/internal/browser"
	"github.com/sebastian/job-pipeline/internal/dedup"
)

const (
	// MaxActionsPerRun caps every networking action per invocation.
	MaxActionsPerRun = 20

	// MaxTabsPerWalk bounds consecutive focus moves without a hit.
	MaxTabsPerWalk = 150

	BirthdayURL = "https://www.linkedin.com/mynetwork/catch-up/birthday/"
	FeedURL     = "https://www.linkedin.com/feed/"
)

// CatchUpKind selects one of the catch-up update pages.
type CatchUpKind string

const (
	JobChanges        CatchUpKind = "job_changes"
	WorkAnniversaries CatchUpKind = "work_anniversaries"
	EducationUpdates  CatchUpKind = "education"
)

// URL returns the catch-up page for the kind.
func (k CatchUpKind) URL() string {
	return "https://www.linkedin.com/mynetwork/catch-up/" + string(k) + "/"
}

// Networker bundles the browser driver with the dedup logs the actions
// consult and update.
type Networker struct {
	Driver      browser.Driver
	BirthdayLog *dedup.JSONStore[dedup.BirthdayEntry]
	NewsLog     *dedup.JSONStore[string]
	LikedPosts  *dedup.JSONStore[string]

	// Pause is the unit pacing delay. Page loads and dialog waits are
	// multiples of it. Zero in tests.
	Pause time.Duration

	// Today pins the date for birthday dedup keys. Defaults to time.Now.
	Today func() time.Time
}

// DefaultPause paces actions slowly enough for the site to keep up.
const DefaultPause = time.Second

func (n *Networker) pause() time.Duration {
	if n.Pause > 0 {
		return n.Pause
	}
	return DefaultPause
}

// settle waits the given number of pacing units.
func (n *Networker) settle(ctx context.Context, units int) {
	n.Driver.Sleep(ctx, time.Duration(units)*n.pause())
}

func (n *Networker) today() string {
	now := time.Now
	if n.Today != nil {
		now = n.Today
	}
	return now().Format("2006-01-02")
}

// nameFromLabel extracts the person's full name from a card label such as
// "Message John Smith: Happy birthday!".
func nameFromLabel(ariaLabel string) string {
	name := ariaLabel
	if idx := strings.Index(name, ":"); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(strings.TrimPrefix(name, "Message "))
}

func firstName(fullName string) string {
	if fields := strings.Fields(fullName); len(fields) > 0 {
		return fields[0]
	}
	return fullName
}
