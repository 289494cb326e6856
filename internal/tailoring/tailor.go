// Package tailoring implements the AI data stage: it turns a work item's
// job description into tailored resume/cover-letter data via the LLM
// collaborator.
package tailoring

import (
	"context"
	"fmt"
	"os"

	"github.com/sebastian/job-pipeline/internal/llm"
	"github.com/sebastian/job-pipeline/internal/prompts"
	"github.com/sebastian/job-pipeline/internal/runner"
	"github.com/sebastian/job-pipeline/internal/workdir"
)

// Tailor generates data.txt artifacts for pending work items.
type Tailor struct {
	Client llm.Client
}

// BuildPrompt assembles the final prompt from the embedded preprompt, the
// main instruction, and the full job description record.
func BuildPrompt(jobRecord string) (string, error) {
	preprompt, err := prompts.Get("tailoring.json", "preprompt")
	if err != nil {
		return "", &runner.ConfigError{Message: "preprompt template missing", Cause: err}
	}
	main, err := prompts.Get("tailoring.json", "main")
	if err != nil {
		return "", &runner.ConfigError{Message: "main prompt template missing", Cause: err}
	}

	return fmt.Sprintf("%s\n\n%s\n\n--- JOB DESCRIPTION ---\n\n%s", preprompt, main, jobRecord), nil
}

// Process is the unit of work for one item: prompt the model with the job
// description and durably write the cleaned output as data.txt. The runner
// advances Data-Status only after this returns nil.
func (t *Tailor) Process(ctx context.Context, item workdir.Item) error {
	record, err := os.ReadFile(item.RecordPath())
	if err != nil {
		return &runner.NotFoundError{Message: workdir.RecordFileName + " missing", Cause: err}
	}

	prompt, err := BuildPrompt(string(record))
	if err != nil {
		return err
	}

	fmt.Printf("  > Sending prompt to Google AI...\n")
	output, err := t.Client.GenerateContent(ctx, prompt)
	if err != nil {
		return &runner.TransientError{Message: "AI generation failed", Cause: err}
	}

	cleaned := llm.CleanCodeFences(output)
	if err := os.WriteFile(item.DataPath(), []byte(cleaned), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", workdir.DataFileName, err)
	}
	fmt.Printf("  > SUCCESS: AI-generated %s saved.\n", workdir.DataFileName)
	return nil
}
