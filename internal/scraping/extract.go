// Package scraping discovers new job postings from the search results of the
// configured job board and turns them into work items.
package scraping

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// requiredKeywords gate relevance: a description must mention at least one.
var requiredKeywords = []string{
	"scrum", "software", "tech", "technology", "it", "agile",
	"app", "application", "web", "mobile",
}

var (
	emailPattern  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	salaryPattern = regexp.MustCompile(`\$[0-9,.]+[Kk]?\s*[-–to]+\s*\$[0-9,.]+[Kk]?`)
)

// Relevant reports whether the description mentions any required keyword.
func Relevant(description string) bool {
	lower := strings.ToLower(description)
	for _, keyword := range requiredKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// JobDetails is everything extracted from one details panel.
type JobDetails struct {
	RoleName                string
	CompanyName             string
	Location                string
	Type                    string
	SalaryRange             string
	HiringTeam              string
	ApplicationInstructions string
	JobDescription          string
}

// ParseDetailsPanel extracts a job posting from the details panel HTML shown
// after selecting a result card.
func ParseDetailsPanel(html string) (JobDetails, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return JobDetails{}, fmt.Errorf("failed to parse details panel: %w", err)
	}

	details := JobDetails{
		RoleName:       text(doc, "div.job-details-jobs-unified-top-card__job-title h1"),
		CompanyName:    text(doc, ".job-details-jobs-unified-top-card__company-name a"),
		JobDescription: text(doc, "#job-details"),
	}
	if details.RoleName == "" {
		return JobDetails{}, fmt.Errorf("details panel has no job title")
	}

	details.Location = parseLocation(text(doc, ".job-details-jobs-unified-top-card__tertiary-description-container"))
	details.HiringTeam = text(doc, "span.jobs-poster__name")
	if details.HiringTeam == "" {
		details.HiringTeam = "Not identified"
	}

	details.ApplicationInstructions = parseApplicationInstructions(doc, details.JobDescription)
	details.Type = parseJobType(details.JobDescription)
	details.SalaryRange = parseSalaryRange(details.JobDescription)
	return details, nil
}

func text(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// parseLocation keeps the location segment of the "location · posted ·
// applicants" tertiary line.
func parseLocation(raw string) string {
	if raw == "" {
		return "Not specified"
	}
	return strings.TrimSpace(strings.SplitN(raw, "·", 2)[0])
}

// parseApplicationInstructions prefers the apply button's kind, falling back
// to any email addresses found in the description.
func parseApplicationInstructions(doc *goquery.Document, description string) string {
	if doc.Find("button.jobs-apply-button[aria-label*='Apply on company website']").Length() > 0 {
		return "Apply on company website (button in job post)"
	}
	if doc.Find("button.jobs-apply-button[aria-label*='Easy Apply']").Length() > 0 {
		return "LinkedIn Easy Apply"
	}
	if emails := emailPattern.FindAllString(description, -1); len(emails) > 0 {
		return "Apply by emailing: " + strings.Join(emails, ", ")
	}
	return "See Job Post URL"
}

func parseJobType(description string) string {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "remote"):
		return "Remote"
	case strings.Contains(lower, "on-site"), strings.Contains(lower, "onsite"):
		return "On-site"
	case strings.Contains(lower, "hybrid"):
		return "Hybrid"
	default:
		return "Not specified"
	}
}

func parseSalaryRange(description string) string {
	if salary := salaryPattern.FindString(description); salary != "" {
		return salary
	}
	return "Not specified"
}
