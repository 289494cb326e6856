package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sebastian/job-pipeline/internal/dedup"
	"github.com/sebastian/job-pipeline/internal/workdir"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Interactively create a manual opportunity folder",
	Long:  "Prompts for job details on the terminal and creates an opportunity folder ready for the tailoring stage. The job post URL is checked against the processed-URL log and recorded so the scraper never duplicates it.",
	RunE:  runCreate,
}

var createConfigPath string

func init() {
	createCmd.Flags().StringVar(&createConfigPath, "config", "", "Path to config.json file")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(createConfigPath)
	if err != nil {
		return err
	}

	dir, err := openDirectory(cfg)
	if err != nil {
		return err
	}
	store := dedup.NewTextStore(cfg.ProcessedURLsPath)

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "--- Manual Job Opportunity Creator ---")
	fmt.Fprintln(out, "Please provide the details for the job opportunity. Press Enter to skip optional fields.")

	companyName := prompt(in, out, "\nCompany Name (Required): ")
	roleName := prompt(in, out, "Role Name (Required): ")
	jobPostURL := prompt(in, out, "Job Post URL (Required, for duplicate checking): ")

	if companyName == "" || roleName == "" || jobPostURL == "" {
		return fmt.Errorf("company name, role name, and job post URL are all required")
	}

	baseURL := dedup.NormalizeURL(jobPostURL)
	if store.Contains(baseURL) {
		fmt.Fprintln(out, "\nThis job URL has already been processed. Aborting to prevent a duplicate.")
		return nil
	}

	fmt.Fprintln(out, "\n--- Optional Details ---")
	location := promptOr(in, out, "Location (e.g., Orlando, FL): ", "Not specified")
	jobType := promptOr(in, out, "Type (e.g., On-site, Remote, Hybrid): ", "Not specified")
	salaryRange := promptOr(in, out, "Salary Range (e.g., $100K - $120K): ", "Not specified")
	hiringTeam := promptOr(in, out, "Hiring Team / Contact Person: ", "Not identified")
	instructions := promptOr(in, out, "Application Instructions: ", "See Job Post URL")

	fmt.Fprintln(out, "\n--- Job Description ---")
	fmt.Fprintln(out, "Enter/Paste the job description. Type 'END' on a new line and press Enter when finished.")
	description := readUntilEnd(in)

	item, err := dir.Create(workdir.JobPosting{
		JobBoard:                "Manual Entry",
		CompanyName:             companyName,
		RoleName:                roleName,
		Location:                location,
		Type:                    jobType,
		SalaryRange:             salaryRange,
		HiringTeam:              hiringTeam,
		ApplicationInstructions: instructions,
		JobPostURL:              jobPostURL,
		JobDescription:          description,
	}, time.Now())
	if err != nil {
		return fmt.Errorf("could not create opportunity: %w", err)
	}
	if item == nil {
		return fmt.Errorf("a folder for this job already exists for today's date")
	}
	fmt.Fprintf(out, "\n  > SUCCESS: Created new opportunity folder at: %s\n", item.Path)

	if err := store.Append(baseURL); err != nil {
		return fmt.Errorf("folder created but URL logging failed: %w", err)
	}
	fmt.Fprintln(out, "  > SUCCESS: Added URL to the processed-URL log to prevent future duplicates.")
	fmt.Fprintln(out, "\nManual opportunity created successfully. It is now ready for the tailoring stage.")
	return nil
}

func prompt(in *bufio.Scanner, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func promptOr(in *bufio.Scanner, out io.Writer, label, fallback string) string {
	if value := prompt(in, out, label); value != "" {
		return value
	}
	return fallback
}

func readUntilEnd(in *bufio.Scanner) string {
	var lines []string
	for in.Scan() {
		line := in.Text()
		if strings.EqualFold(strings.TrimSpace(line), "END") {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
