package rendering

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"

	"github.com/jonathan/advert-generator/internal/document"
)

func TestMarkdown_Serialize(t *testing.T) {
	data, err := NewMarkdown().Serialize(sampleDocument())
	require.NoError(t, err)

	expected := "**Location:** Lansing & Remote\n" +
		"\n" +
		"- Run <QC> assays\n" +
		"\n" +
		"Please press Apply to submit your application.\n"
	assert.Equal(t, expected, string(data))
}

func markdownToHTML(t *testing.T, src []byte) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, goldmark.Convert(src, &buf))
	return buf.String()
}

func TestMarkdown_Serialize_KeepsBlockBoundaries(t *testing.T) {
	doc := document.NewBuilder(nil).Build(
		"Job Title: Chemist\nLocation: Lansing\n- Run assays\n- Write reports\nPlease press Apply to submit your application.",
	)

	data, err := NewMarkdown().Serialize(doc)
	require.NoError(t, err)

	expected := "<p><strong>Job Title:</strong> Chemist</p>\n" +
		"<p><strong>Location:</strong> Lansing</p>\n" +
		"<ul>\n<li>Run assays</li>\n<li>Write reports</li>\n</ul>\n" +
		"<p>Please press Apply to submit your application.</p>\n"
	assert.Equal(t, expected, markdownToHTML(t, data))
}

func TestMarkdown_Serialize_ListBetweenParagraphs(t *testing.T) {
	doc := &document.Document{Paragraphs: []document.Paragraph{
		{Style: document.ListBullet, Runs: []document.Run{{Text: "First"}}},
		{},
		{Style: document.ListBullet, Runs: []document.Run{{Text: "Second"}}},
		{Runs: []document.Run{{Text: "Plain"}}},
		{Runs: []document.Run{{Text: "Also plain"}}},
	}}

	data, err := NewMarkdown().Serialize(doc)
	require.NoError(t, err)
	assert.Equal(t, "- First\n- Second\n\nPlain\n\nAlso plain\n", string(data))
	assert.Equal(t,
		"<ul>\n<li>First</li>\n<li>Second</li>\n</ul>\n<p>Plain</p>\n<p>Also plain</p>\n",
		markdownToHTML(t, data))
}

func TestMarkdown_Serialize_NilDocument(t *testing.T) {
	_, err := NewMarkdown().Serialize(nil)
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format    string
		extension string
		listStyle bool
	}{
		{"", "docx", true},
		{"docx", "docx", true},
		{".DOCX", "docx", true},
		{"md", "md", true},
		{"markdown", "md", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			s, err := ForFormat(tt.format, true)
			require.NoError(t, err)
			assert.Equal(t, tt.extension, s.Extension())
			assert.Equal(t, tt.listStyle, s.SupportsListStyle())
		})
	}
}

func TestForFormat_ListStyleOff(t *testing.T) {
	s, err := ForFormat("docx", false)
	require.NoError(t, err)
	assert.False(t, s.SupportsListStyle())
}

func TestForFormat_Unknown(t *testing.T) {
	_, err := ForFormat("pdf", true)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
