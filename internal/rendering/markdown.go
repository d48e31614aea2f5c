package rendering

import (
	"strings"

	"github.com/jonathan/advert-generator/internal/document"
)

// Markdown writes the document as Markdown text. Bold runs become **text**
// and list paragraphs become "- " items.
type Markdown struct{}

// NewMarkdown returns a Markdown serializer.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// SupportsListStyle is always true; Markdown has native list items.
func (m *Markdown) SupportsListStyle() bool { return true }

// Extension returns "md".
func (m *Markdown) Extension() string { return FormatMarkdown }

// ContentType returns the Markdown MIME type.
func (m *Markdown) ContentType() string { return "text/markdown; charset=utf-8" }

// Serialize renders each paragraph as its own Markdown block. Consecutive
// list paragraphs form one tight list; every other boundary is a blank line
// so paragraphs never merge and text after a list never joins the last item.
// Empty paragraphs have no Markdown form and are dropped.
func (m *Markdown) Serialize(doc *document.Document) ([]byte, error) {
	if doc == nil {
		return nil, &RenderError{Message: "document is nil"}
	}

	var sb strings.Builder
	var prev *document.Paragraph
	for i := range doc.Paragraphs {
		p := &doc.Paragraphs[i]
		if p.IsBlank() {
			continue
		}
		if prev != nil {
			if prev.IsList() && p.IsList() {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		if p.IsList() {
			sb.WriteString("- ")
		}
		for _, r := range p.Runs {
			if r.Bold && strings.TrimSpace(r.Text) != "" {
				sb.WriteString("**")
				sb.WriteString(r.Text)
				sb.WriteString("**")
				continue
			}
			sb.WriteString(r.Text)
		}
		prev = p
	}
	sb.WriteString("\n")

	return []byte(sb.String()), nil
}
