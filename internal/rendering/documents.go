package rendering

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sebastian/job-pipeline/internal/runner"
	"github.com/sebastian/job-pipeline/internal/status"
	"github.com/sebastian/job-pipeline/internal/workdir"
)

// Generator produces the CV and cover letter documents for a work item and
// records each generated application in the todo log.
type Generator struct {
	Renderer       Renderer
	CVTemplatePath string
	CLTemplatePath string
	// OutputName is the fixed candidate-name component of generated file
	// names, e.g. "Jane-Doe" -> CV-Jane-Doe.pdf.
	OutputName string
	TodoPath   string

	// Now allows tests to pin the todo-log timestamp.
	Now func() time.Time
}

// Process generates both documents for one item. Every artifact (HTML and
// PDF for CV and CL, plus the todo entry) is durably written before this
// returns nil; only then does the runner advance Status to processed.
func (g *Generator) Process(ctx context.Context, item workdir.Item) error {
	if _, err := os.Stat(item.DataPath()); err != nil {
		return &runner.NotFoundError{Message: workdir.DataFileName + " not found in this folder", Cause: err}
	}

	aiData, err := status.ParseFields(item.DataPath())
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", workdir.DataFileName, err)
	}
	jobData, err := status.ParseFields(item.RecordPath())
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", workdir.RecordFileName, err)
	}
	data := MergeFields(aiData, jobData)

	for _, doc := range []struct {
		docType      DocType
		templatePath string
	}{
		{DocCV, g.CVTemplatePath},
		{DocCL, g.CLTemplatePath},
	} {
		fmt.Printf("  > Processing %s...\n", doc.docType)
		if err := g.generateDocument(ctx, item, doc.templatePath, data, doc.docType); err != nil {
			return err
		}
	}

	if err := g.logTodo(item, jobData); err != nil {
		// The documents exist; a todo-log failure is reported but does not
		// fail the item.
		fmt.Printf("  > WARNING: Could not write to %s: %v\n", filepath.Base(g.TodoPath), err)
	}
	return nil
}

func (g *Generator) generateDocument(ctx context.Context, item workdir.Item, templatePath string, data map[string]string, docType DocType) error {
	html, err := GenerateHTML(templatePath, data, docType)
	if err != nil {
		return err
	}

	base := fmt.Sprintf("%s-%s", docType, g.OutputName)
	htmlPath := filepath.Join(item.Path, base+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", htmlPath, err)
	}
	fmt.Printf("  > Generated HTML: %s\n", htmlPath)

	pdf, err := g.Renderer.Render(ctx, html)
	if err != nil {
		return &runner.TransientError{Message: fmt.Sprintf("%s PDF conversion failed", docType), Cause: err}
	}

	pdfPath := filepath.Join(item.Path, base+".pdf")
	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", pdfPath, err)
	}
	fmt.Printf("  > Successfully created PDF: %s\n", pdfPath)
	return nil
}

// logTodo appends the human follow-up entry for a generated application.
func (g *Generator) logTodo(item workdir.Item, jobData map[string]string) error {
	if g.TodoPath == "" {
		return nil
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	absPath, err := filepath.Abs(item.Path)
	if err != nil {
		absPath = item.Path
	}

	entry := fmt.Sprintf(
		"---------------------------------------------------\n"+
			"Generated on: %s\n"+
			"Company: %s\n"+
			"Role: %s\n"+
			"\n"+
			"  > Application URL:\n"+
			"    %s\n"+
			"\n"+
			"  > Generated Documents Path:\n"+
			"    %s\n"+
			"---------------------------------------------------\n\n",
		now().Format("2006-01-02 15:04:05"),
		fieldOr(jobData, "Company Name", "Unknown Company"),
		fieldOr(jobData, "Role Name", "Unknown Role"),
		fieldOr(jobData, "Job post URL", "URL not found"),
		absPath,
	)

	f, err := os.OpenFile(g.TodoPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return err
	}
	fmt.Printf("  > Successfully logged to '%s'.\n", filepath.Base(g.TodoPath))
	return nil
}

func fieldOr(data map[string]string, key, fallback string) string {
	if v := data[key]; v != "" {
		return v
	}
	return fallback
}
