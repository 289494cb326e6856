package tailoring

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastian/job-pipeline/internal/runner"
	"github.com/sebastian/job-pipeline/internal/status"
	"github.com/sebastian/job-pipeline/internal/workdir"
)

type mockClient struct {
	response string
	err      error
	prompts  []string
}

func (m *mockClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

func (m *mockClient) Close() error { return nil }

func newTestItem(t *testing.T) workdir.Item {
	t.Helper()
	dir, err := workdir.NewDirectory(filepath.Join(t.TempDir(), "opportunities"))
	require.NoError(t, err)
	item, err := dir.Create(workdir.JobPosting{
		CompanyName:    "Acme",
		RoleName:       "QA Tester",
		JobPostURL:     "https://x.com/jobs/view/1",
		JobDescription: "Break things professionally.",
	}, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return *item
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt("Company Name: Acme")
	require.NoError(t, err)
	assert.Contains(t, prompt, "--- JOB DESCRIPTION ---")
	assert.Contains(t, prompt, "Company Name: Acme")
}

func TestProcess_WritesCleanedArtifact(t *testing.T) {
	item := newTestItem(t)
	client := &mockClient{response: "```text\nSUMMARY: tailored summary\n```"}
	tailor := &Tailor{Client: client}

	require.NoError(t, tailor.Process(context.Background(), item))

	data, err := os.ReadFile(item.DataPath())
	require.NoError(t, err)
	assert.Equal(t, "SUMMARY: tailored summary", string(data))

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Break things professionally.")
}

func TestProcess_TransientFailure(t *testing.T) {
	item := newTestItem(t)
	tailor := &Tailor{Client: &mockClient{err: errors.New("quota exceeded")}}

	err := tailor.Process(context.Background(), item)
	require.Error(t, err)

	var transient *runner.TransientError
	assert.True(t, errors.As(err, &transient))
	assert.NoFileExists(t, item.DataPath())
}

func TestProcess_MissingRecord(t *testing.T) {
	item := workdir.Item{Name: "ghost", Path: filepath.Join(t.TempDir(), "ghost")}
	tailor := &Tailor{Client: &mockClient{response: "x"}}

	err := tailor.Process(context.Background(), item)
	require.Error(t, err)

	var notFound *runner.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestProcess_EndToEndWithRunner(t *testing.T) {
	dir, err := workdir.NewDirectory(filepath.Join(t.TempDir(), "opportunities"))
	require.NoError(t, err)
	item, err := dir.Create(workdir.JobPosting{
		CompanyName: "Acme",
		RoleName:    "QA Tester",
	}, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	tailor := &Tailor{Client: &mockClient{response: "SUMMARY: ok"}}
	r := &runner.StageRunner{
		Dir:          dir,
		Stage:        status.KeyDataStatus,
		Eligible:     []status.StageState{status.StatePending, status.StateError},
		SuccessState: status.StateComplete,
		OnFailure:    runner.MarkError,
		Process:      tailor.Process,
	}

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, status.StateComplete, status.ReadStage(item.RecordPath(), status.KeyDataStatus))
	assert.Equal(t, status.StatePending, status.ReadStage(item.RecordPath(), status.KeyStatus))
}
