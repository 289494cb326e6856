package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrStopWalk is returned by an ActionFunc to end the walk early without
// reporting an error.
var ErrStopWalk = errors.New("stop walk")

// PredicateFunc decides whether the currently focused element is a target.
type PredicateFunc func(ctx context.Context, el FocusedElement, d Driver) (bool, error)

// ActionFunc handles one matched element. acted reports whether the element
// was actually processed; a skipped element does not reset the bailout
// counter.
type ActionFunc func(ctx context.Context, el FocusedElement, d Driver) (acted bool, err error)

// WalkOptions configures a focus walk over the current page.
type WalkOptions struct {
	// MaxTabs is the bailout: consecutive focus moves without a processed
	// match before the walk gives up.
	MaxTabs int
	// Pause is the settle delay after each focus move.
	Pause     time.Duration
	Predicate PredicateFunc
	Action    ActionFunc
}

// DefaultMaxTabs bounds a walk when the caller does not.
const DefaultMaxTabs = 30

// Walk repeatedly moves focus forward and hands every element matching the
// predicate to the action. Each processed match resets the bailout counter,
// so densely packed targets can exceed MaxTabs in total. Returns the number
// of processed matches.
func Walk(ctx context.Context, d Driver, opts WalkOptions) (int, error) {
	maxTabs := opts.MaxTabs
	if maxTabs <= 0 {
		maxTabs = DefaultMaxTabs
	}

	hits := 0
	for tabs := 0; tabs < maxTabs; tabs++ {
		if err := ctx.Err(); err != nil {
			return hits, err
		}

		if err := d.SendTab(ctx); err != nil {
			return hits, fmt.Errorf("failed to move focus: %w", err)
		}
		d.Sleep(ctx, opts.Pause)

		el, err := d.ActiveElement(ctx)
		if err != nil {
			// A transient focus glitch on one stop should not end the walk.
			fmt.Printf("  > Could not inspect focused element, continuing: %v\n", err)
			continue
		}

		match, err := opts.Predicate(ctx, el, d)
		if err != nil {
			fmt.Printf("  > Predicate failed on <%s>, continuing: %v\n", el.Tag, err)
			continue
		}
		if !match {
			continue
		}

		acted, err := opts.Action(ctx, el, d)
		if errors.Is(err, ErrStopWalk) {
			if acted {
				hits++
			}
			return hits, nil
		}
		if err != nil {
			fmt.Printf("  > Action failed on <%s>, continuing: %v\n", el.Tag, err)
			continue
		}
		if acted {
			hits++
			tabs = -1
		}
	}
	return hits, nil
}
