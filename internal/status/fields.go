package status

import (
	"os"
	"strings"
)

// SectionEnd terminates a multi-line field value inside a record file.
const SectionEnd = "---END_SECTION---"

// ParseFields reads every Key: value pair from a record or data file into a
// map. A key with an empty value opens a multi-line section collected until
// the SectionEnd sentinel. Blank lines and # comments are skipped, as are
// the stage lines themselves (those belong to ReadStage/WriteStage).
func ParseFields(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	var currentKey string
	var currentLines []string

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lower := strings.ToLower(line)
		if currentKey == "" && (strings.HasPrefix(lower, "status:") || strings.HasPrefix(lower, "data-status:")) {
			continue
		}

		if strings.Contains(line, SectionEnd) {
			if currentKey != "" {
				fields[currentKey] = strings.TrimSpace(strings.Join(currentLines, "\n"))
				currentKey = ""
				currentLines = nil
			}
			continue
		}

		if currentKey == "" {
			if key, value, ok := strings.Cut(line, ":"); ok {
				key = strings.TrimSpace(key)
				value = strings.TrimSpace(value)
				if value != "" {
					fields[key] = value
				} else {
					currentKey = key
				}
			}
			continue
		}

		currentLines = append(currentLines, line)
	}

	// An unterminated section still yields its collected lines.
	if currentKey != "" {
		fields[currentKey] = strings.TrimSpace(strings.Join(currentLines, "\n"))
	}

	return fields, nil
}
