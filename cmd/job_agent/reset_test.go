package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastian/job-pipeline/internal/status"
	"github.com/sebastian/job-pipeline/internal/workdir"
)

func seedProcessedItem(t *testing.T, opportunitiesDir, todoPath string) workdir.Item {
	t.Helper()
	dir, err := workdir.NewDirectory(opportunitiesDir)
	require.NoError(t, err)

	item, err := dir.Create(workdir.JobPosting{
		CompanyName: "Acme", RoleName: "QA Tester",
		JobPostURL: "https://x.com/jobs/view/1", JobDescription: "software testing",
	}, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(item.DataPath(), []byte("SUMMARY: done\n"), 0644))
	require.NoError(t, status.WriteStage(item.RecordPath(), status.KeyDataStatus, status.StateComplete))
	require.NoError(t, status.WriteStage(item.RecordPath(), status.KeyStatus, status.StateProcessed))
	require.NoError(t, os.WriteFile(todoPath, []byte("an entry\n"), 0644))
	return *item
}

func TestResetCommand_Cancelled(t *testing.T) {
	cfg := writeTestConfig(t, &resetConfigPath)
	item := seedProcessedItem(t, cfg.OpportunitiesDir, cfg.TodoPath)

	resetCmd.SetIn(bytes.NewBufferString("n\n"))
	var out bytes.Buffer
	resetCmd.SetOut(&out)

	require.NoError(t, runReset(resetCmd, nil))
	assert.Contains(t, out.String(), "Operation cancelled by user.")
	assert.Equal(t, status.StateProcessed, status.ReadStage(item.RecordPath(), status.KeyStatus),
		"nothing is touched on cancel")
	assert.FileExists(t, item.DataPath())
}

func TestResetCommand_Confirmed(t *testing.T) {
	cfg := writeTestConfig(t, &resetConfigPath)
	item := seedProcessedItem(t, cfg.OpportunitiesDir, cfg.TodoPath)

	resetCmd.SetIn(bytes.NewBufferString("y\n"))
	var out bytes.Buffer
	resetCmd.SetOut(&out)

	require.NoError(t, runReset(resetCmd, nil))

	assert.Equal(t, status.StatePending, status.ReadStage(item.RecordPath(), status.KeyStatus))
	assert.Equal(t, status.StatePending, status.ReadStage(item.RecordPath(), status.KeyDataStatus))
	assert.NoFileExists(t, item.DataPath())

	todo, err := os.ReadFile(cfg.TodoPath)
	require.NoError(t, err)
	assert.Empty(t, todo, "todo log is cleared")
}

func TestResetCommand_YesFlagSkipsPrompt(t *testing.T) {
	cfg := writeTestConfig(t, &resetConfigPath)
	item := seedProcessedItem(t, cfg.OpportunitiesDir, cfg.TodoPath)

	resetYes = true
	t.Cleanup(func() { resetYes = false })
	resetCmd.SetIn(bytes.NewBufferString(""))
	resetCmd.SetOut(&bytes.Buffer{})

	require.NoError(t, runReset(resetCmd, nil))
	assert.Equal(t, status.StatePending, status.ReadStage(item.RecordPath(), status.KeyStatus))
}

func TestSyncURLsCommand_RebuildsLog(t *testing.T) {
	cfg := writeTestConfig(t, &syncURLsConfigPath)
	seedProcessedItem(t, cfg.OpportunitiesDir, cfg.TodoPath)

	var out bytes.Buffer
	syncURLsCmd.SetOut(&out)

	require.NoError(t, runSyncURLs(syncURLsCmd, nil))
	assert.Contains(t, out.String(), "Found 1 URLs")

	data, err := os.ReadFile(cfg.ProcessedURLsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://x.com/jobs/view/1")
}

func TestSyncURLsCommand_WarnsOnCorruptBirthdayLog(t *testing.T) {
	cfg := writeTestConfig(t, &syncURLsConfigPath)
	seedProcessedItem(t, cfg.OpportunitiesDir, cfg.TodoPath)
	require.NoError(t, os.WriteFile(cfg.BirthdayLogPath, []byte(`[{"fullName": ""}]`), 0644))

	var out bytes.Buffer
	syncURLsCmd.SetOut(&out)

	require.NoError(t, runSyncURLs(syncURLsCmd, nil))
	assert.Contains(t, out.String(), "WARNING: birthday log")
	assert.Contains(t, out.String(), "corrupt state in "+cfg.BirthdayLogPath)
}

func TestLoadMergedConfig_NoFileUsesDefaults(t *testing.T) {
	cfg, err := loadMergedConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".", "opportunities"), cfg.OpportunitiesDir)
	assert.Equal(t, "http://127.0.0.1:9222", cfg.DebuggerURL)
}
