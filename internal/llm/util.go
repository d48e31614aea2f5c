package llm

import "strings"

// StripCodeFence removes a Markdown code fence wrapped around a whole
// response. Models sometimes fence plain text even when told not to.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(text, "```"), "```")
	// Drop a language tag such as "text" or "markdown" on the opening line.
	if idx := strings.Index(inner, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(inner[:idx])
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
			inner = inner[idx+1:]
		}
	}
	return strings.TrimSpace(inner)
}
