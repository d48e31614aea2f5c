package llm

import (
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "Job Title: Chemist",
			expected: "Job Title: Chemist",
		},
		{
			name:     "fenced with language",
			input:    "```markdown\nJob Title: Chemist\n- Run assays\n```",
			expected: "Job Title: Chemist\n- Run assays",
		},
		{
			name:     "fenced without language",
			input:    "```\nLocation: Lansing\n```",
			expected: "Location: Lansing",
		},
		{
			name:     "inline fence in body kept",
			input:    "Use ```code``` here",
			expected: "Use ```code``` here",
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```text\nHello\n```  \n",
			expected: "Hello",
		},
		{
			name:     "bare fence",
			input:    "```",
			expected: "```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripCodeFence(tt.input)
			if result != tt.expected {
				t.Errorf("StripCodeFence() = %q, want %q", result, tt.expected)
			}
		})
	}
}
