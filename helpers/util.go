package helpers

import (
	"strings"
)

// FirstLine returns the first non-blank line of text, trimmed
func FirstLine(text string) string {
	for text != "" {
		line, rest, _ := strings.Cut(text, "\n")
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
		text = rest
	}
	return ""
}

// NormalizeSpace collapses runs of whitespace into single spaces
func NormalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ContainsFold reports whether substr is within s, ignoring case
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
