package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFields(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFields_FlatPairs(t *testing.T) {
	path := writeFields(t, "Company Name: Acme\nRole Name: QA Tester\n")

	fields, err := ParseFields(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", fields["Company Name"])
	assert.Equal(t, "QA Tester", fields["Role Name"])
}

func TestParseFields_MultiLineSection(t *testing.T) {
	path := writeFields(t, `SUMMARY:
First line.
Second line.
---END_SECTION---
SUBJECT: Application for {{JOB_ROLE}}
`)

	fields, err := ParseFields(path)
	require.NoError(t, err)
	assert.Equal(t, "First line.\nSecond line.", fields["SUMMARY"])
	assert.Equal(t, "Application for {{JOB_ROLE}}", fields["SUBJECT"])
}

func TestParseFields_SkipsStatusCommentsAndBlank(t *testing.T) {
	path := writeFields(t, `Status: pending
Data-Status: complete
# a comment

Company Name: Acme
`)

	fields, err := ParseFields(path)
	require.NoError(t, err)
	assert.NotContains(t, fields, "Status")
	assert.NotContains(t, fields, "Data-Status")
	assert.Equal(t, "Acme", fields["Company Name"])
}

func TestParseFields_UnterminatedSection(t *testing.T) {
	path := writeFields(t, "NOTES:\nline one\nline two\n")

	fields, err := ParseFields(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", fields["NOTES"])
}

func TestParseFields_MissingFile(t *testing.T) {
	_, err := ParseFields(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
