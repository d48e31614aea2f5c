package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t]+`)
	excessBlank = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings, collapses runs of inner spaces, keeps
// list and heading lines intact and allows at most one blank line between
// paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := excessBlank.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line and collapses inner whitespace. Bullet lines keep
// their indentation so nested lists survive.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	collapsed := innerSpace.ReplaceAllString(trimmed, " ")
	if isBulletLine(trimmed) {
		return line[:len(line)-len(trimmed)] + collapsed
	}
	return collapsed
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	for _, prefix := range []string{"- ", "* ", "• ", "· ", "– "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
