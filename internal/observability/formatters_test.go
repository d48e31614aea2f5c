package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/advert-generator/internal/document"
	"github.com/jonathan/advert-generator/internal/housestyle"
	"github.com/jonathan/advert-generator/internal/pipeline"
)

func TestPrintSource(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSource("chemist.docx", "Senior Chemist\n\nRun assays\nL1\nL2\nL3\nL4\nL5")
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED JOB DESCRIPTION")
	assert.Contains(t, output, "chemist.docx")
	assert.Contains(t, output, "Lines:    7")
	assert.Contains(t, output, "Senior Chemist")
	assert.Contains(t, output, "... and 2 more lines")
	assert.NotContains(t, output, "L4")
}

func TestPrintSource_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSource("x.pdf", "  \n")
	assert.Empty(t, buf.String())
}

func TestPrintAdvert(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &document.Document{Paragraphs: []document.Paragraph{
		{Runs: []document.Run{{Text: "Job Title:", Bold: true}, {Text: " Chemist"}}},
		{},
		{Runs: []document.Run{{Text: "Benefits:", Bold: true}}},
		{Style: document.ListBullet, Runs: []document.Run{{Text: "Pension"}}},
	}}

	p.PrintAdvert(doc, housestyle.Report{})
	output := buf.String()
	assert.Contains(t, output, "GENERATED ADVERT")
	assert.Contains(t, output, "Paragraphs: 4")
	assert.Contains(t, output, "Bullets:    1")
	assert.Contains(t, output, "• Job Title")
	assert.Contains(t, output, "• Benefits")
	assert.Contains(t, output, "✓ house style")

	buf.Reset()
	p.PrintAdvert(doc, housestyle.Report{MissingClosingLine: true, AvoidedPhrases: []string{"rockstar"}})
	output = buf.String()
	assert.Contains(t, output, "⚠ closing line missing")
	assert.Contains(t, output, `⚠ avoided phrase: "rockstar"`)
}

func TestPrintAdvert_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAdvert(nil, housestyle.Report{})
	assert.Empty(t, buf.String())
}

func TestPrintBatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &pipeline.BatchResult{
		ID: uuid.New(),
		Items: []pipeline.Item{
			{Index: 0, Name: "in/chemist.docx", Status: pipeline.StatusSuccess, Duration: 1500 * time.Millisecond},
			{Index: 1, Name: "blank.pdf", Status: pipeline.StatusSkipped, Reason: "no text"},
			{Index: 2, Name: "", Status: pipeline.StatusFailed, Reason: "generate failed: quota"},
		},
	}

	p.PrintBatch(result)
	output := buf.String()
	assert.Contains(t, output, "BATCH RESULTS")
	assert.Contains(t, output, "✓ chemist (1.5s)")
	assert.Contains(t, output, "- blank: skipped")
	assert.Contains(t, output, "✗ #3")
	assert.Contains(t, output, "generate failed: quota")
	assert.Contains(t, output, "1 succeeded, 2 failed")
}

func TestPrintBox_AlignsAndTruncates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}
