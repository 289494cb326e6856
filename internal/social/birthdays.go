package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/sebastian/job-pipeline/internal/browser"
	"github.com/sebastian/job-pipeline/internal/dedup"
	"github.com/sebastian/job-pipeline/internal/prompts"
)

// promptsFile holds the birthday message templates.
const promptsFile = "tailoring.json"

// WishBirthdays walks the birthday catch-up page and sends a personalized
// wish to every connection not yet logged for today. Each send is committed
// to the birthday log before the next card is touched, so an interrupted run
// never re-messages anyone. Returns the number of wishes sent.
func (n *Networker) WishBirthdays(ctx context.Context) (int, error) {
	fmt.Println("--- Wishing birthdays ---")
	if err := n.Driver.Navigate(ctx, BirthdayURL); err != nil {
		return 0, fmt.Errorf("failed to open birthdays page: %w", err)
	}
	n.settle(ctx, 5)

	entries := n.BirthdayLog.Load()
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.Key()] = true
	}
	fmt.Printf("Loaded %d birthday log entries.\n", len(entries))

	wished := 0
	_, err := browser.Walk(ctx, n.Driver, browser.WalkOptions{
		MaxTabs: MaxTabsPerWalk,
		Pause:   n.pause() / 5,
		Predicate: func(ctx context.Context, el browser.FocusedElement, d browser.Driver) (bool, error) {
			return el.Tag == "a" &&
				el.Attr("data-view-name") == "nurture-card-primary-button" &&
				strings.HasPrefix(el.Attr("aria-label"), "Message "), nil
		},
		Action: func(ctx context.Context, el browser.FocusedElement, d browser.Driver) (bool, error) {
			label := el.Attr("aria-label")
			name := nameFromLabel(label)
			today := n.today()

			entry := dedup.BirthdayEntry{FullName: name, Date: today, Type: "birthday"}
			messageKey := "message_birthday"
			if strings.Contains(strings.ToLower(label), "belated") {
				entry.Type = "belated birthday"
				messageKey = "message_belated_birthday"
			}

			if seen[entry.Key()] {
				fmt.Printf("Skipping %s, already wished today (%s).\n", name, today)
				return false, nil
			}
			if wished >= MaxActionsPerRun {
				fmt.Printf("Reached the limit of %d wishes for this run. Stopping.\n", MaxActionsPerRun)
				return false, browser.ErrStopWalk
			}
			fmt.Printf("Found unprocessed birthday for: %s\n", name)

			template, err := prompts.Get(promptsFile, messageKey)
			if err != nil {
				return false, err
			}
			message := prompts.Format(template, map[string]string{"FirstName": firstName(name)})

			if err := n.sendCardMessage(ctx, message); err != nil {
				// Dismiss whatever dialog is open so the walk can go on.
				if escErr := d.SendEscape(ctx); escErr != nil {
					return false, fmt.Errorf("failed to recover from message dialog: %w", escErr)
				}
				n.settle(ctx, 2)
				return false, err
			}

			entries, err = n.BirthdayLog.AppendAndSave(entries, entry)
			if err != nil {
				return false, fmt.Errorf("message sent to %s but logging failed: %w", name, err)
			}
			seen[entry.Key()] = true
			wished++
			fmt.Printf("Logged %s as processed for %s.\n", name, today)

			// Reload so the remaining cards reflow and focus starts clean.
			if err := n.Driver.Navigate(ctx, BirthdayURL); err != nil {
				return true, browser.ErrStopWalk
			}
			n.settle(ctx, 5)
			return true, nil
		},
	})
	if err != nil {
		return wished, err
	}

	if wished > 0 {
		fmt.Printf("Successfully wished %d people a happy birthday.\n", wished)
	} else {
		fmt.Println("No new birthdays found to process on the page.")
	}
	return wished, nil
}

// sendCardMessage opens the message dialog for the focused card, replaces
// the canned text with ours, then tabs to the send button and confirms.
func (n *Networker) sendCardMessage(ctx context.Context, message string) error {
	if err := n.Driver.SendEnter(ctx); err != nil {
		return err
	}
	n.settle(ctx, 5)

	if err := n.Driver.ClearInput(ctx); err != nil {
		return err
	}
	n.settle(ctx, 1)

	if err := n.Driver.Type(ctx, message); err != nil {
		return err
	}
	n.settle(ctx, 5)

	// The send button sits a fixed five focus stops past the compose box.
	for i := 0; i < 5; i++ {
		if err := n.Driver.SendTab(ctx); err != nil {
			return err
		}
		n.settle(ctx, 1)
	}
	return n.Driver.SendEnter(ctx)
}
