package observability

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sebastian/job-pipeline/internal/runner"
	"github.com/sebastian/job-pipeline/internal/scraping"
	"github.com/sebastian/job-pipeline/internal/workdir"
)

func TestPrintStageSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	id := uuid.New()
	p.PrintStageSummary("tailor", runner.Summary{
		RunID: id, Scanned: 5, Processed: 3, Skipped: 1, Failed: 1,
	})
	output := buf.String()

	assert.Contains(t, output, "TAILOR SUMMARY")
	assert.Contains(t, output, "Processed: 3")
	assert.Contains(t, output, "Failed:    1")
}

func TestPrintScrapeSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScrapeSummary(scraping.Summary{Pages: 2, Scanned: 40, Created: 7, Skipped: 30, Filtered: 3})
	output := buf.String()

	assert.Contains(t, output, "SCRAPE SUMMARY")
	assert.Contains(t, output, "Pages:     2")
	assert.Contains(t, output, "Created:   7")
}

func TestPrintNetworkSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintNetworkSummary(NetworkSummary{Wished: 2, Liked: 12})
	output := buf.String()

	assert.Contains(t, output, "NETWORKING SUMMARY")
	assert.Contains(t, output, "Birthday wishes: 2")
	assert.Contains(t, output, "News shared:     none")
}

func TestPrintResetSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResetSummary(workdir.ResetSummary{FoldersProcessed: 4, FilesDeleted: 9})
	output := buf.String()

	assert.Contains(t, output, "RESET SUMMARY")
	assert.Contains(t, output, "Folders reset:  4")
	assert.Contains(t, output, "Files deleted:  9")
}
