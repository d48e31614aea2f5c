package housestyle

import (
	"strings"
)

// Report lists house style problems found in generated advert text.
type Report struct {
	MissingClosingLine bool     `json:"missing_closing_line,omitempty"`
	AvoidedPhrases     []string `json:"avoided_phrases,omitempty"`
}

// OK reports whether no problems were found.
func (r Report) OK() bool {
	return !r.MissingClosingLine && len(r.AvoidedPhrases) == 0
}

// Check inspects generated text for the closing line and for phrases the
// style avoids. Matching is case-insensitive.
func (s Style) Check(text string) Report {
	normalized := strings.ToLower(text)
	return Report{
		MissingClosingLine: s.ClosingLine != "" && !strings.Contains(normalized, strings.ToLower(s.ClosingLine)),
		AvoidedPhrases:     findPhrases(normalized, s.AvoidPhrases),
	}
}

// EnsureClosingLine appends the closing line when the text lacks it.
func (s Style) EnsureClosingLine(text string) string {
	if s.ClosingLine == "" || strings.Contains(strings.ToLower(text), strings.ToLower(s.ClosingLine)) {
		return text
	}
	return strings.TrimRight(text, " \t\r\n") + "\n\n" + s.ClosingLine
}

// findPhrases returns each phrase found in normalizedText, once, in the order
// given. normalizedText must already be lowercase.
func findPhrases(normalizedText string, phrases []string) []string {
	if len(phrases) == 0 {
		return nil
	}

	var found []string
	seen := make(map[string]bool)
	for _, phrase := range phrases {
		normalizedPhrase := strings.ToLower(strings.TrimSpace(phrase))
		if normalizedPhrase == "" || seen[normalizedPhrase] {
			continue
		}
		if strings.Contains(normalizedText, normalizedPhrase) {
			found = append(found, phrase)
			seen[normalizedPhrase] = true
		}
	}

	return found
}
