package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"opportunities_dir": "/data/opportunities",
		"output_name": "Jane-Doe",
		"search_pages": 2,
		"like_searches": [{"keyword": "ai", "url": "https://example.com/search?q=ai"}]
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/opportunities", cfg.OpportunitiesDir)
	assert.Equal(t, "Jane-Doe", cfg.OutputName)
	assert.Equal(t, 2, cfg.SearchPages)
	require.Len(t, cfg.LikeSearches, 1)
	assert.Equal(t, "ai", cfg.LikeSearches[0].Keyword)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

// A misspelled key is a hard error, not a silently ignored field.
func TestLoadConfig_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `{"opportunity_dir": "/data"}`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate(t *testing.T) {
	base := t.TempDir()
	template := filepath.Join(base, "cv.html")
	require.NoError(t, os.WriteFile(template, []byte("<body></body>"), 0644))

	cfg := Config{CVTemplatePath: template}
	assert.NoError(t, cfg.Validate())

	cfg = Config{CVTemplatePath: filepath.Join(base, "missing.html")}
	assert.Error(t, cfg.Validate())

	cfg = Config{SearchPages: -1}
	assert.Error(t, cfg.Validate())

	cfg = Config{LikeSearches: []LikeSearch{{Keyword: "ai"}}}
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Defaults("/base")

	cfg := Config{OpportunitiesDir: "/custom/opps", MaxItems: 5}
	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "/custom/opps", merged.OpportunitiesDir, "explicit value wins")
	assert.Equal(t, filepath.Join("/base", "processed_urls.txt"), merged.ProcessedURLsPath)
	assert.Equal(t, filepath.Join("/base", "todo.txt"), merged.TodoPath)
	assert.Equal(t, "http://127.0.0.1:9222", merged.DebuggerURL)
	assert.Equal(t, 5, merged.MaxItems)
}
