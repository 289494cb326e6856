package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sebastian/job-pipeline/internal/config"
	"github.com/sebastian/job-pipeline/internal/gdocs"
)

var fetchTemplatesCmd = &cobra.Command{
	Use:   "fetch-templates",
	Short: "Download the master CV and cover letter templates from Google Docs",
	Long:  "Exports the configured Google Docs as HTML and writes them over the local rendering templates. Needs Google service-account credentials with read access to the documents.",
	RunE:  runFetchTemplates,
}

var (
	fetchTemplatesConfigPath string
	fetchCredentialsPath     string
)

// newExporter is swapped out in tests.
var newExporter = func(ctx context.Context, credentialsPath string) (gdocs.Exporter, error) {
	return gdocs.NewDriveExporter(ctx, credentialsPath)
}

func init() {
	fetchTemplatesCmd.Flags().StringVar(&fetchTemplatesConfigPath, "config", "", "Path to config.json file")
	fetchTemplatesCmd.Flags().StringVar(&fetchCredentialsPath, "credentials", "", "Path to Google service-account credentials JSON")

	rootCmd.AddCommand(fetchTemplatesCmd)
}

func runFetchTemplates(cmd *cobra.Command, _ []string) error {
	// loadMergedConfig is not used here: its Validate step requires the
	// template files to exist, and fetching is what creates them.
	var cfg config.Config
	if fetchTemplatesConfigPath != "" {
		loaded, err := config.LoadConfig(fetchTemplatesConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.Defaults("."))

	if cfg.CVDocID == "" && cfg.CLDocID == "" {
		return fmt.Errorf("no document IDs configured (set 'cv_doc_id' and/or 'cl_doc_id')")
	}

	specs := []gdocs.TemplateSpec{
		{Label: "CV", DocID: cfg.CVDocID, OutPath: cfg.CVTemplatePath},
		{Label: "CL", DocID: cfg.CLDocID, OutPath: cfg.CLTemplatePath},
	}
	for _, spec := range specs {
		if spec.DocID != "" && spec.OutPath == "" {
			return fmt.Errorf("%s template path is required to save the export", spec.Label)
		}
	}

	credentials := fetchCredentialsPath
	if credentials == "" {
		credentials = cfg.GoogleCredentialsPath
	}
	if credentials == "" {
		return fmt.Errorf("credentials are required (set 'google_credentials_path' in config or --credentials flag)")
	}

	exp, err := newExporter(context.Background(), credentials)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "--- Template Fetch Utility ---")
	written, err := gdocs.FetchTemplates(context.Background(), exp, specs)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Fetched %d template(s).\n", written)
	return nil
}
