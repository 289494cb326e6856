package rendering

import (
	"fmt"
	"os"
	"strings"
)

// DocType distinguishes the two generated documents.
type DocType string

const (
	DocCV DocType = "CV"
	DocCL DocType = "CL"
)

// Substitute replaces every {{Key}} placeholder in the template with the
// matching field value. Unknown placeholders are left in place so a missing
// field is visible in the output instead of silently blank.
func Substitute(template string, data map[string]string) string {
	for key, value := range data {
		template = strings.ReplaceAll(template, fmt.Sprintf("{{%s}}", key), value)
	}
	return template
}

// GenerateHTML loads the template for docType and fills it with data. For
// cover letters the SUBJECT field is resolved first: its own {{JOB_ROLE}}
// and {{COMPANY_NAME}} placeholders are filled from the job fields before
// the general pass places the subject into the page.
func GenerateHTML(templatePath string, data map[string]string, docType DocType) (string, error) {
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return "", &TemplateError{Message: fmt.Sprintf("failed to read %s template %s", docType, templatePath), Cause: err}
	}

	if docType == DocCL {
		if subject, ok := data["SUBJECT"]; ok {
			subject = strings.ReplaceAll(subject, "{{JOB_ROLE}}", data["Role Name"])
			subject = strings.ReplaceAll(subject, "{{COMPANY_NAME}}", data["Company Name"])
			resolved := make(map[string]string, len(data))
			for k, v := range data {
				resolved[k] = v
			}
			resolved["SUBJECT"] = subject
			data = resolved
		}
	}

	return Substitute(string(raw), data), nil
}

// MergeFields combines AI-generated data with the job description fields.
// The job description wins on key collisions: scraped facts outrank model
// output.
func MergeFields(aiData, jobData map[string]string) map[string]string {
	merged := make(map[string]string, len(aiData)+len(jobData))
	for k, v := range aiData {
		merged[k] = v
	}
	for k, v := range jobData {
		merged[k] = v
	}
	return merged
}
