// Package workdir manages the work-item directory: one folder per discovered
// opportunity, each owning a status record and its generated artifacts.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sebastian/job-pipeline/internal/status"
)

// File names owned by a work-item folder.
const (
	RecordFileName = "jobdescription.txt"
	DataFileName   = "data.txt"
)

// JobPosting holds the descriptive fields of one discovered opportunity.
type JobPosting struct {
	JobBoard                string
	CompanyName             string
	RoleName                string
	Location                string
	Type                    string
	SalaryRange             string
	HiringTeam              string
	ApplicationInstructions string
	JobPostURL              string
	JobDescription          string
}

// Item is one work-item folder.
type Item struct {
	Name string
	Path string
}

// RecordPath returns the path of the item's status record.
func (it Item) RecordPath() string {
	return filepath.Join(it.Path, RecordFileName)
}

// DataPath returns the path of the item's AI-generated data file.
func (it Item) DataPath() string {
	return filepath.Join(it.Path, DataFileName)
}

// Directory is the collection of work-item folders under one base path.
type Directory struct {
	Base string
}

// NewDirectory returns a Directory rooted at base, creating it if needed.
func NewDirectory(base string) (*Directory, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("failed to create opportunities directory %s: %w", base, err)
	}
	return &Directory{Base: base}, nil
}

// sanitizeComponent keeps only alphanumerics, space, hyphen and underscore,
// then turns spaces into underscores. Deterministic and pure so the derived
// folder name doubles as a duplicate guard.
func sanitizeComponent(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			sb.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(sb.String()), " ", "_")
}

// DeriveFolderName builds the human-readable folder name for a job scraped
// on the given date.
func DeriveFolderName(company, role string, date time.Time) string {
	if company == "" {
		company = "Unknown Company"
	}
	if role == "" {
		role = "Unknown Role"
	}
	return fmt.Sprintf("%s_%s_%s",
		sanitizeComponent(company),
		sanitizeComponent(role),
		date.Format("2006-01-02"))
}

// Create allocates a new work-item folder for the job and writes its status
// record with both stages pending. It returns (nil, nil) without touching
// anything if a folder of the derived name already exists; this is the
// folder-level duplicate guard layered on top of the URL log.
func (d *Directory) Create(job JobPosting, date time.Time) (*Item, error) {
	name := DeriveFolderName(job.CompanyName, job.RoleName, date)
	path := filepath.Join(d.Base, name)

	if _, err := os.Stat(path); err == nil {
		return nil, nil
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create opportunity folder %s: %w", path, err)
	}

	var sb strings.Builder
	sb.WriteString("Status: pending\n")
	sb.WriteString("Data-Status: pending\n")
	writeField := func(key, value string) {
		if value == "" {
			value = "N/A"
		}
		fmt.Fprintf(&sb, "%s: %s\n", key, value)
	}
	writeField("Job board", job.JobBoard)
	writeField("Company Name", job.CompanyName)
	writeField("Role Name", job.RoleName)
	writeField("Location", job.Location)
	writeField("Type", job.Type)
	writeField("Salary range", job.SalaryRange)
	writeField("Hiring Team", job.HiringTeam)
	writeField("Application Instructions", job.ApplicationInstructions)
	writeField("Job post URL", job.JobPostURL)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Job Description:\n%s\n", job.JobDescription)

	item := &Item{Name: name, Path: path}
	if err := os.WriteFile(item.RecordPath(), []byte(sb.String()), 0644); err != nil {
		return nil, fmt.Errorf("failed to write status record for %s: %w", name, err)
	}
	return item, nil
}

// Items returns every work-item folder in lexicographic order so repeated
// scans are reproducible and diffable.
func (d *Directory) Items() ([]Item, error) {
	entries, err := os.ReadDir(d.Base)
	if err != nil {
		return nil, fmt.Errorf("failed to scan opportunities directory %s: %w", d.Base, err)
	}

	var items []Item
	for _, entry := range entries {
		if entry.IsDir() {
			items = append(items, Item{
				Name: entry.Name(),
				Path: filepath.Join(d.Base, entry.Name()),
			})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// DiscoverPending returns the items whose stage state for key matches one of
// the wanted states, in deterministic order.
func (d *Directory) DiscoverPending(key string, wanted ...status.StageState) ([]Item, error) {
	items, err := d.Items()
	if err != nil {
		return nil, err
	}

	var matched []Item
	for _, item := range items {
		state := status.ReadStage(item.RecordPath(), key)
		for _, w := range wanted {
			if state == w {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched, nil
}
