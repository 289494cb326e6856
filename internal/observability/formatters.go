// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/sebastian/job-pipeline/internal/runner"
	"github.com/sebastian/job-pipeline/internal/scraping"
	"github.com/sebastian/job-pipeline/internal/workdir"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted summary output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStageSummary outputs the result of one pipeline stage run.
func (p *Printer) PrintStageSummary(stage string, sum runner.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", sum.RunID))
	sb.WriteString(fmt.Sprintf("Scanned:   %d\n", sum.Scanned))
	sb.WriteString(fmt.Sprintf("Processed: %d\n", sum.Processed))
	sb.WriteString(fmt.Sprintf("Skipped:   %d\n", sum.Skipped))
	sb.WriteString(fmt.Sprintf("Failed:    %d", sum.Failed))

	p.printBox(strings.ToUpper(stage)+" SUMMARY", sb.String())
}

// PrintScrapeSummary outputs the result of a scrape run.
func (p *Printer) PrintScrapeSummary(sum scraping.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pages:     %d\n", sum.Pages))
	sb.WriteString(fmt.Sprintf("Scanned:   %d\n", sum.Scanned))
	sb.WriteString(fmt.Sprintf("Created:   %d\n", sum.Created))
	sb.WriteString(fmt.Sprintf("Skipped:   %d\n", sum.Skipped))
	sb.WriteString(fmt.Sprintf("Filtered:  %d", sum.Filtered))

	p.printBox("SCRAPE SUMMARY", sb.String())
}

// NetworkSummary aggregates the counts of one networking run.
type NetworkSummary struct {
	Wished     int
	Liked      int
	SharedNews string
}

// PrintNetworkSummary outputs the result of a networking run.
func (p *Printer) PrintNetworkSummary(sum NetworkSummary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Birthday wishes: %d\n", sum.Wished))
	sb.WriteString(fmt.Sprintf("Posts liked:     %d\n", sum.Liked))
	if sum.SharedNews != "" {
		sb.WriteString(fmt.Sprintf("News shared:     %s", sum.SharedNews))
	} else {
		sb.WriteString("News shared:     none")
	}

	p.printBox("NETWORKING SUMMARY", sb.String())
}

// PrintResetSummary outputs what a reset removed.
func (p *Printer) PrintResetSummary(sum workdir.ResetSummary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Folders reset:  %d\n", sum.FoldersProcessed))
	sb.WriteString(fmt.Sprintf("Files deleted:  %d", sum.FilesDeleted))

	p.printBox("RESET SUMMARY", sb.String())
}
