// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sebastian/job-pipeline/internal/schemas"
)

// LikeSearch pairs a content-search URL with the keyword it was built for.
type LikeSearch struct {
	Keyword string `json:"keyword"`
	URL     string `json:"url"`
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	OpportunitiesDir  string `json:"opportunities_dir,omitempty"`   // Directory holding one folder per opportunity
	ProcessedURLsPath string `json:"processed_urls_path,omitempty"` // Newline-delimited scraped-URL log
	TodoPath          string `json:"todo_path,omitempty"`           // Human follow-up log
	BirthdayLogPath   string `json:"birthday_log_path,omitempty"`   // JSON birthday-wish log
	NewsLogPath       string `json:"news_log_path,omitempty"`       // JSON shared-news log
	LikedPostsLogPath string `json:"liked_posts_log_path,omitempty"` // JSON liked-post URN log
	CVTemplatePath    string `json:"cv_template_path,omitempty"`    // HTML template for the CV
	CLTemplatePath    string `json:"cl_template_path,omitempty"`    // HTML template for the cover letter

	// Identity
	OutputName string `json:"output_name,omitempty"` // Candidate-name component of generated file names

	// Template fetch
	CVDocID               string `json:"cv_doc_id,omitempty"`               // Google Doc ID of the master CV
	CLDocID               string `json:"cl_doc_id,omitempty"`               // Google Doc ID of the master cover letter
	GoogleCredentialsPath string `json:"google_credentials_path,omitempty"` // Service-account credentials for the Drive export

	// Scraping
	SearchURL   string `json:"search_url,omitempty"`   // Job search results URL
	SearchPages int    `json:"search_pages,omitempty"` // Page limit for one scrape (0 = all)

	// Networking
	LikeSearches []LikeSearch `json:"like_searches,omitempty"` // Content searches to like posts from

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Model       string `json:"model,omitempty"`        // Gemini model name override
	DebuggerURL string `json:"debugger_url,omitempty"` // Chrome remote debugging address
	MaxItems    int    `json:"max_items,omitempty"`    // Per-run item cap for pipeline stages (0 = all)
}

// LoadConfig loads configuration from a JSON file. The content is checked
// against the embedded schema before unmarshaling so typos surface with
// field-level messages instead of being silently ignored.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := schemas.ValidateConfig(string(data)); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.SearchPages < 0 {
		return fmt.Errorf("config error: 'search_pages' must be non-negative")
	}
	if c.MaxItems < 0 {
		return fmt.Errorf("config error: 'max_items' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.CVTemplatePath != "" {
		if _, err := os.Stat(c.CVTemplatePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: CV template file not found: %s", c.CVTemplatePath)
		}
	}
	if c.CLTemplatePath != "" {
		if _, err := os.Stat(c.CLTemplatePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: CL template file not found: %s", c.CLTemplatePath)
		}
	}

	for i, search := range c.LikeSearches {
		if search.Keyword == "" || search.URL == "" {
			return fmt.Errorf("config error: 'like_searches[%d]' needs both keyword and url", i)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.OpportunitiesDir == "" {
		result.OpportunitiesDir = defaults.OpportunitiesDir
	}
	if result.ProcessedURLsPath == "" {
		result.ProcessedURLsPath = defaults.ProcessedURLsPath
	}
	if result.TodoPath == "" {
		result.TodoPath = defaults.TodoPath
	}
	if result.BirthdayLogPath == "" {
		result.BirthdayLogPath = defaults.BirthdayLogPath
	}
	if result.NewsLogPath == "" {
		result.NewsLogPath = defaults.NewsLogPath
	}
	if result.LikedPostsLogPath == "" {
		result.LikedPostsLogPath = defaults.LikedPostsLogPath
	}
	if result.CVTemplatePath == "" {
		result.CVTemplatePath = defaults.CVTemplatePath
	}
	if result.CLTemplatePath == "" {
		result.CLTemplatePath = defaults.CLTemplatePath
	}
	if result.OutputName == "" {
		result.OutputName = defaults.OutputName
	}
	if result.CVDocID == "" {
		result.CVDocID = defaults.CVDocID
	}
	if result.CLDocID == "" {
		result.CLDocID = defaults.CLDocID
	}
	if result.GoogleCredentialsPath == "" {
		result.GoogleCredentialsPath = defaults.GoogleCredentialsPath
	}
	if result.SearchURL == "" {
		result.SearchURL = defaults.SearchURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.DebuggerURL == "" {
		result.DebuggerURL = defaults.DebuggerURL
	}

	// Int fields: use default if zero
	if result.SearchPages == 0 {
		result.SearchPages = defaults.SearchPages
	}
	if result.MaxItems == 0 {
		result.MaxItems = defaults.MaxItems
	}

	if len(result.LikeSearches) == 0 {
		result.LikeSearches = defaults.LikeSearches
	}

	return result
}

// Defaults returns the conventional layout rooted at baseDir: the
// opportunities directory and every log file beside it.
func Defaults(baseDir string) Config {
	return Config{
		OpportunitiesDir:  filepath.Join(baseDir, "opportunities"),
		ProcessedURLsPath: filepath.Join(baseDir, "processed_urls.txt"),
		TodoPath:          filepath.Join(baseDir, "todo.txt"),
		BirthdayLogPath:   filepath.Join(baseDir, "birthday_log.json"),
		NewsLogPath:       filepath.Join(baseDir, "news_log.json"),
		LikedPostsLogPath: filepath.Join(baseDir, "liked_posts_log.json"),
		DebuggerURL:       "http://127.0.0.1:9222",
	}
}
