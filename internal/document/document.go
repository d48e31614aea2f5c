// Package document holds the format-independent advert document model and the
// builder that produces it from sanitized text.
package document

import "strings"

// ListBullet is the list style tag carried by bullet paragraphs.
const ListBullet = "List Bullet"

// Run is a span of text within a paragraph.
type Run struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Paragraph is an ordered list of runs with an optional list style.
// A paragraph with no runs is a blank paragraph break.
type Paragraph struct {
	Style string `json:"style,omitempty"`
	Runs  []Run  `json:"runs,omitempty"`
}

// IsBlank reports whether the paragraph is a paragraph break.
func (p Paragraph) IsBlank() bool {
	return len(p.Runs) == 0
}

// IsList reports whether the paragraph carries the list style.
func (p Paragraph) IsList() bool {
	return p.Style == ListBullet
}

// Text concatenates the run texts.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Document is an ordered sequence of paragraphs.
type Document struct {
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Text renders the document back to plain text, one line per paragraph.
// Bullet paragraphs get a "- " prefix.
func (d *Document) Text() string {
	lines := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		if p.IsList() {
			lines[i] = "- " + p.Text()
			continue
		}
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}
