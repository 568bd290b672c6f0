package config

import (
	"strings"
)

// GenerateConfigContent returns the defaults with every value commented
// out, as a starting point for a user config file
func GenerateConfigContent() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// commentOutConfigValues comments out assignment lines, keeping blank
// lines, comments and section headers. Multi-line strings are commented
// through to their closing delimiter.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inMultiline := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inMultiline {
			result = append(result, "# "+line)
			if strings.Contains(trimmed, `"""`) {
				inMultiline = false
			}
			continue
		}

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
		if strings.Count(trimmed, `"""`) == 1 {
			inMultiline = true
		}
	}

	return strings.Join(result, "\n")
}
