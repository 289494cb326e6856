package gdocs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// MimeHTML is the export format the rendering templates consume.
const MimeHTML = "text/html"

// TemplateSpec names one master document and the template file its export
// replaces.
type TemplateSpec struct {
	Label   string
	DocID   string
	OutPath string
}

// FetchTemplates downloads each named document as HTML and writes it over
// the template file the renderer reads. Specs with an empty DocID are
// skipped so the CV and CL can be refreshed independently. Returns the
// number of templates written.
func FetchTemplates(ctx context.Context, exp Exporter, specs []TemplateSpec) (int, error) {
	written := 0
	for _, spec := range specs {
		if spec.DocID == "" {
			continue
		}

		name, err := exp.Name(ctx, spec.DocID)
		if err != nil {
			fmt.Printf("Could not resolve the name of %s document %s: %v\n", spec.Label, spec.DocID, err)
			name = spec.DocID
		}
		fmt.Printf("Fetching %s from %q...\n", spec.Label, name)

		data, err := exp.Export(ctx, spec.DocID, MimeHTML)
		if err != nil {
			return written, fmt.Errorf("failed to fetch %s template: %w", spec.Label, err)
		}

		if dir := filepath.Dir(spec.OutPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return written, fmt.Errorf("failed to create template directory %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(spec.OutPath, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s template: %w", spec.Label, err)
		}
		fmt.Printf("Saved %s template to: %s\n", spec.Label, spec.OutPath)
		written++
	}
	return written, nil
}
