package document

import (
	"strings"

	"github.com/jonathan/advert-generator/internal/headers"
)

const bulletPrefix = "- "

// Builder maps sanitized text onto a Document using a fixed header set.
type Builder struct {
	headers *headers.Set
}

// NewBuilder returns a Builder for the given header set. A nil set uses the
// house-style default.
func NewBuilder(set *headers.Set) *Builder {
	if set == nil {
		set = headers.DefaultSet()
	}
	return &Builder{headers: set}
}

// Headers returns the header set used by the builder.
func (b *Builder) Headers() *headers.Set {
	return b.headers
}

// Build emits exactly one paragraph per "\n"-delimited line of text.
// Lines are classified as header, then bullet, then plain; an empty line
// becomes a blank paragraph.
func (b *Builder) Build(text string) *Document {
	lines := strings.Split(text, "\n")
	doc := &Document{Paragraphs: make([]Paragraph, 0, len(lines))}
	for _, line := range lines {
		doc.Paragraphs = append(doc.Paragraphs, b.paragraph(strings.TrimRight(line, " \t\r\v\f")))
	}
	return doc
}

func (b *Builder) paragraph(line string) Paragraph {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Paragraph{}
	}

	if m, ok := b.headers.Match(trimmed); ok {
		p := Paragraph{Runs: []Run{{Text: m.Header, Bold: true}}}
		if m.Trailing != "" {
			p.Runs = append(p.Runs, Run{Text: " " + m.Trailing})
		}
		return p
	}

	if strings.HasPrefix(trimmed, bulletPrefix) {
		return Paragraph{
			Style: ListBullet,
			Runs:  []Run{{Text: strings.TrimSpace(trimmed[len(bulletPrefix):])}},
		}
	}

	return Paragraph{Runs: []Run{{Text: trimmed}}}
}

// Build builds text with the default header set.
func Build(text string) *Document {
	return NewBuilder(nil).Build(text)
}
