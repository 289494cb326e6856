package main

import (
	"fmt"
	"os"

	"github.com/sebastian/job-pipeline/internal/config"
	"github.com/sebastian/job-pipeline/internal/llm"
	"github.com/sebastian/job-pipeline/internal/rendering"
	"github.com/sebastian/job-pipeline/internal/runner"
	"github.com/sebastian/job-pipeline/internal/status"
	"github.com/sebastian/job-pipeline/internal/tailoring"
	"github.com/sebastian/job-pipeline/internal/workdir"
)

// loadMergedConfig loads the optional config file and fills the gaps with
// the conventional layout rooted at the current directory.
func loadMergedConfig(configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	return cfg.MergeWithDefaults(config.Defaults(".")), nil
}

// resolveAPIKey resolves the Gemini key: flag, then config, then environment.
func resolveAPIKey(cfg config.Config, flagKey string) (string, error) {
	key := flagKey
	if key == "" {
		key = cfg.APIKey
	}
	if key == "" {
		key = os.Getenv("GEMINI_API_KEY")
	}
	if key == "" {
		return "", fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable, config 'api_key', or --api-key flag)")
	}
	return key, nil
}

func resolveModel(cfg config.Config, flagModel string) string {
	if flagModel != "" {
		return flagModel
	}
	if cfg.Model != "" {
		return cfg.Model
	}
	return llm.DefaultModel
}

func openDirectory(cfg config.Config) (*workdir.Directory, error) {
	dir, err := workdir.NewDirectory(cfg.OpportunitiesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open opportunities directory: %w", err)
	}
	return dir, nil
}

// newTailorRunner wires the AI-data stage: Data-Status pending or error in,
// complete out, failures marked error so the next run retries them.
func newTailorRunner(cfg config.Config, dir *workdir.Directory, client llm.Client) *runner.StageRunner {
	tailor := &tailoring.Tailor{Client: client}
	return &runner.StageRunner{
		Dir:          dir,
		Stage:        status.KeyDataStatus,
		Eligible:     []status.StageState{status.StatePending, status.StateError},
		SuccessState: status.StateComplete,
		OnFailure:    runner.MarkError,
		MaxItems:     cfg.MaxItems,
		Process:      tailor.Process,
	}
}

// newGenerateRunner wires the document stage: Status pending in, processed
// out, failures left pending for manual review. The Ready re-check keeps the
// stage off items whose AI data is not complete yet.
func newGenerateRunner(cfg config.Config, dir *workdir.Directory, renderer rendering.Renderer) (*runner.StageRunner, error) {
	if cfg.CVTemplatePath == "" || cfg.CLTemplatePath == "" {
		return nil, fmt.Errorf("cv_template_path and cl_template_path are required for document generation")
	}
	if cfg.OutputName == "" {
		return nil, fmt.Errorf("output_name is required for document generation")
	}

	gen := &rendering.Generator{
		Renderer:       renderer,
		CVTemplatePath: cfg.CVTemplatePath,
		CLTemplatePath: cfg.CLTemplatePath,
		OutputName:     cfg.OutputName,
		TodoPath:       cfg.TodoPath,
	}
	return &runner.StageRunner{
		Dir:          dir,
		Stage:        status.KeyStatus,
		Eligible:     []status.StageState{status.StatePending},
		SuccessState: status.StateProcessed,
		OnFailure:    runner.LeaveState,
		MaxItems:     cfg.MaxItems,
		Ready: func(item workdir.Item) bool {
			return status.ReadStage(item.RecordPath(), status.KeyDataStatus) == status.StateComplete
		},
		Process: gen.Process,
	}, nil
}
