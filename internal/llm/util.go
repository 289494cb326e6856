package llm

import (
	"regexp"
	"strings"
)

var codeFencePattern = regexp.MustCompile("```(text|markdown|json)?")

// CleanCodeFences strips markdown code-fence wrappers the model sometimes
// adds around plain-text output.
func CleanCodeFences(text string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(text, ""))
}
