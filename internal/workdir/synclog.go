package workdir

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sebastian/job-pipeline/internal/dedup"
)

// RebuildURLLog reconciles the dedup store with the folders on disk: it
// extracts the job post URL from every item's status record, unions the
// normalized URLs with whatever the store already holds, and rewrites the
// store sorted. This is the recovery path when the two duplicate guards
// disagree (folder present, URL unlogged).
func (d *Directory) RebuildURLLog(store *dedup.TextStore) (found int, total int, err error) {
	items, err := d.Items()
	if err != nil {
		return 0, 0, err
	}

	urls := store.Load()
	before := len(urls)

	for _, item := range items {
		url, ok := extractJobPostURL(item.RecordPath())
		if !ok {
			continue
		}
		urls[dedup.NormalizeURL(url)] = true
	}
	found = len(urls) - before

	if err := store.Rewrite(urls); err != nil {
		return found, len(urls), fmt.Errorf("failed to rewrite URL log: %w", err)
	}
	return found, len(urls), nil
}

// extractJobPostURL scans a status record for its "Job post URL:" line.
func extractJobPostURL(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "job post url:") {
			_, value, _ := strings.Cut(line, ":")
			value = strings.TrimSpace(value)
			return value, value != ""
		}
	}
	return "", false
}
