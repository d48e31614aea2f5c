// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/advert-generator/internal/document"
	"github.com/jonathan/advert-generator/internal/housestyle"
	"github.com/jonathan/advert-generator/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to width runes. fmt's width counts bytes,
// which misaligns the box for non-ASCII text.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintSource outputs the start of an extracted job description.
func (p *Printer) PrintSource(name, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if name == "" {
		name = "(inline text)"
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", name))
	sb.WriteString(fmt.Sprintf("Chars:    %d\n", utf8.RuneCountInString(text)))
	sb.WriteString(fmt.Sprintf("Lines:    %d\n\n", len(lines)))

	count := min(len(lines), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(lines[i] + "\n")
	}
	if len(lines) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more lines\n", len(lines)-maxItemsToShow))
	}

	p.printBox("EXTRACTED JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAdvert outputs the structure of a built advert and its house style
// check.
func (p *Printer) PrintAdvert(doc *document.Document, report housestyle.Report) {
	if doc == nil {
		return
	}

	var sections []string
	bullets := 0
	for _, para := range doc.Paragraphs {
		if para.IsList() {
			bullets++
			continue
		}
		if len(para.Runs) > 0 && para.Runs[0].Bold {
			sections = append(sections, strings.TrimSuffix(strings.TrimSpace(para.Runs[0].Text), ":"))
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Paragraphs: %d\n", len(doc.Paragraphs)))
	sb.WriteString(fmt.Sprintf("Bullets:    %d\n\n", bullets))

	if len(sections) > 0 {
		sb.WriteString("Sections:\n")
		for _, s := range sections {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
		sb.WriteString("\n")
	}

	if report.OK() {
		sb.WriteString("✓ house style")
	} else {
		if report.MissingClosingLine {
			sb.WriteString("⚠ closing line missing\n")
		}
		for _, phrase := range report.AvoidedPhrases {
			sb.WriteString(fmt.Sprintf("⚠ avoided phrase: %q\n", phrase))
		}
	}

	p.printBox("GENERATED ADVERT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatch outputs one line per batch item and the summary.
func (p *Printer) PrintBatch(result *pipeline.BatchResult) {
	if result == nil || len(result.Items) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Batch: %s\n\n", result.ID))
	for _, item := range result.Items {
		name := pipeline.BaseName(item.Name)
		if name == "" {
			name = fmt.Sprintf("#%d", item.Index+1)
		}
		switch item.Status {
		case pipeline.StatusSuccess:
			sb.WriteString(fmt.Sprintf("✓ %s (%v)\n", name, item.Duration.Round(time.Millisecond)))
		case pipeline.StatusSkipped:
			sb.WriteString(fmt.Sprintf("- %s: skipped\n", name))
		default:
			sb.WriteString(fmt.Sprintf("✗ %s\n", name))
			sb.WriteString(fmt.Sprintf("  %s\n", item.Reason))
		}
	}
	sb.WriteString("\n" + result.Summary())

	p.printBox("BATCH RESULTS", sb.String())
}
