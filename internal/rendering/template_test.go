package rendering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	html := Substitute("<h1>{{Role Name}}</h1><p>{{SUMMARY}}</p>", map[string]string{
		"Role Name": "QA Tester",
		"SUMMARY":   "I test things.",
	})
	assert.Equal(t, "<h1>QA Tester</h1><p>I test things.</p>", html)
}

func TestSubstitute_UnknownPlaceholderSurvives(t *testing.T) {
	html := Substitute("<p>{{MISSING}}</p>", map[string]string{"SUMMARY": "x"})
	assert.Equal(t, "<p>{{MISSING}}</p>", html)
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenerateHTML_CV(t *testing.T) {
	path := writeTemplate(t, "<body>{{SUMMARY}} at {{Company Name}}</body>")

	html, err := GenerateHTML(path, map[string]string{
		"SUMMARY":      "Seasoned tester",
		"Company Name": "Acme",
	}, DocCV)
	require.NoError(t, err)
	assert.Equal(t, "<body>Seasoned tester at Acme</body>", html)
}

func TestGenerateHTML_CLSubjectPass(t *testing.T) {
	path := writeTemplate(t, "<h2>{{SUBJECT}}</h2>")

	html, err := GenerateHTML(path, map[string]string{
		"SUBJECT":      "Application for {{JOB_ROLE}} at {{COMPANY_NAME}}",
		"Role Name":    "QA Tester",
		"Company Name": "Acme",
	}, DocCL)
	require.NoError(t, err)
	assert.Equal(t, "<h2>Application for QA Tester at Acme</h2>", html)
}

func TestGenerateHTML_CLSubjectPassDoesNotMutateData(t *testing.T) {
	path := writeTemplate(t, "<h2>{{SUBJECT}}</h2>")
	data := map[string]string{
		"SUBJECT":      "Application for {{JOB_ROLE}}",
		"Role Name":    "QA Tester",
		"Company Name": "Acme",
	}

	html, err := GenerateHTML(path, data, DocCL)
	require.NoError(t, err)
	assert.Equal(t, "<h2>Application for QA Tester</h2>", html)
	assert.Equal(t, "Application for {{JOB_ROLE}}", data["SUBJECT"],
		"caller's field map keeps the raw subject")
}

func TestGenerateHTML_CVLeavesSubjectNested(t *testing.T) {
	path := writeTemplate(t, "<h2>{{SUBJECT}}</h2>")

	html, err := GenerateHTML(path, map[string]string{
		"SUBJECT":   "Application for {{JOB_ROLE}}",
		"Role Name": "QA Tester",
	}, DocCV)
	require.NoError(t, err)
	assert.Equal(t, "<h2>Application for {{JOB_ROLE}}</h2>", html)
}

func TestGenerateHTML_MissingTemplate(t *testing.T) {
	_, err := GenerateHTML(filepath.Join(t.TempDir(), "nope.html"), nil, DocCV)
	require.Error(t, err)

	var tmplErr *TemplateError
	assert.ErrorAs(t, err, &tmplErr)
}

func TestMergeFields_JobDataWins(t *testing.T) {
	merged := MergeFields(
		map[string]string{"SUMMARY": "ai", "Company Name": "Hallucinated Corp"},
		map[string]string{"Company Name": "Acme"},
	)
	assert.Equal(t, "ai", merged["SUMMARY"])
	assert.Equal(t, "Acme", merged["Company Name"])
}
