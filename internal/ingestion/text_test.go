package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \n\t\n  ", ""},
		{"collapse spaces", "Line    with    spaces", "Line with spaces"},
		{"line endings", "a\r\nb\rc\nd", "a\nb\nc\nd"},
		{"excess blank lines", "a\n\n\n\n\nb", "a\n\nb"},
		{"headings kept", "  # Title\n## Sub", "# Title\n## Sub"},
		{"nested bullet keeps indent", "- top\n   - nested   item", "- top\n   - nested item"},
		{"plain indent dropped", "    indented text", "indented text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test   content\n\n\nMore"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func TestIsBulletLine(t *testing.T) {
	assert.True(t, isBulletLine("- item"))
	assert.True(t, isBulletLine("• item"))
	assert.False(t, isBulletLine("-item"))
	assert.False(t, isBulletLine("item"))
}
