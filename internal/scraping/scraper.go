package scraping

import (
	"context"
	"fmt"
	"time"

	"github.com/sebastian/job-pipeline/internal/dedup"
	"github.com/sebastian/job-pipeline/internal/workdir"
)

// Pager drives the search results UI: open the search, select result cards,
// and move between pages.
type Pager interface {
	Open(ctx context.Context, url string) error
	// Cards returns how many result cards the current page shows.
	Cards(ctx context.Context) (int, error)
	// OpenCard selects the i-th card and returns the details panel HTML plus
	// the page URL after selection.
	OpenCard(ctx context.Context, i int) (html string, pageURL string, err error)
	// NextPage advances to the next results page, reporting false when the
	// current page is the last one.
	NextPage(ctx context.Context) (bool, error)
}

// Summary reports one scrape run.
type Summary struct {
	Pages    int
	Scanned  int
	Created  int
	Skipped  int
	Filtered int
}

// Scraper walks every results page of the search URL and creates a work item
// for each new, relevant posting. The folder is created before the URL is
// logged; a crash between the two is healed by the folder guard on the next
// run.
type Scraper struct {
	Pager     Pager
	Store     *dedup.TextStore
	Dir       *workdir.Directory
	SearchURL string

	// MaxPages bounds pagination. Zero means all pages.
	MaxPages int

	// Now pins folder dates in tests.
	Now func() time.Time
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Run scrapes all result pages. Per-card failures are logged and skipped; a
// failing page transition ends the run with what was gathered so far.
func (s *Scraper) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	seen := s.Store.Load()
	fmt.Printf("Loaded %d previously processed URLs.\n", len(seen))

	if err := s.Pager.Open(ctx, s.SearchURL); err != nil {
		return sum, fmt.Errorf("failed to open search results: %w", err)
	}

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Pages = page
		fmt.Printf("\n--- Scraping page %d ---\n", page)

		if err := s.scrapePage(ctx, seen, &sum); err != nil {
			return sum, err
		}

		if s.MaxPages > 0 && page >= s.MaxPages {
			fmt.Println("Page limit reached. Finishing scrape.")
			break
		}
		more, err := s.Pager.NextPage(ctx)
		if err != nil {
			return sum, fmt.Errorf("failed to advance to the next page: %w", err)
		}
		if !more {
			fmt.Println("Last page reached. Finishing scrape.")
			break
		}
	}

	fmt.Printf("\nFound and created %d new opportunities across %d pages.\n", sum.Created, sum.Pages)
	return sum, nil
}

func (s *Scraper) scrapePage(ctx context.Context, seen map[string]bool, sum *Summary) error {
	count, err := s.Pager.Cards(ctx)
	if err != nil {
		return fmt.Errorf("failed to list result cards: %w", err)
	}
	fmt.Printf("Found %d job listings on this page.\n", count)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		sum.Scanned++

		html, pageURL, err := s.Pager.OpenCard(ctx, i)
		if err != nil {
			fmt.Printf("  > Could not open card %d, skipping: %v\n", i+1, err)
			continue
		}

		details, err := ParseDetailsPanel(html)
		if err != nil {
			fmt.Printf("  > Could not parse card %d, skipping: %v\n", i+1, err)
			continue
		}

		if !Relevant(details.JobDescription) {
			fmt.Printf("  > Skipping %q, does not meet keyword criteria.\n", details.RoleName)
			sum.Filtered++
			continue
		}

		jobURL := dedup.NormalizeURL(pageURL)
		if seen[jobURL] {
			fmt.Printf("  > Skipping duplicate job (URL already processed): %s\n", details.RoleName)
			sum.Skipped++
			continue
		}

		item, err := s.Dir.Create(workdir.JobPosting{
			JobBoard:                "LinkedIn",
			CompanyName:             details.CompanyName,
			RoleName:                details.RoleName,
			Location:                details.Location,
			Type:                    details.Type,
			SalaryRange:             details.SalaryRange,
			HiringTeam:              details.HiringTeam,
			ApplicationInstructions: details.ApplicationInstructions,
			JobPostURL:              pageURL,
			JobDescription:          details.JobDescription,
		}, s.now())
		if err != nil {
			fmt.Printf("  > Could not create opportunity for %q: %v\n", details.RoleName, err)
			continue
		}
		if item == nil {
			fmt.Printf("  > Skipping opportunity (folder may exist for today): %s\n", details.RoleName)
			sum.Skipped++
			continue
		}

		// The URL is committed only after the folder exists. The reverse
		// order could suppress a posting that has no folder.
		if err := s.Store.Append(jobURL); err != nil {
			return fmt.Errorf("created %s but failed to log its URL: %w", item.Name, err)
		}
		seen[jobURL] = true
		sum.Created++
		fmt.Printf("  > SUCCESS: Created new opportunity folder at: %s\n", item.Path)
	}
	return nil
}
