package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/advert-generator/internal/document"
)

// Serializer turns a document into bytes of a concrete file format.
type Serializer interface {
	// Serialize encodes the document, preserving paragraph boundaries,
	// run bold flags and list style tagging.
	Serialize(doc *document.Document) ([]byte, error)
	// SupportsListStyle reports whether bullet paragraphs are written with a
	// named list style. When false, the serializer renders its own fallback.
	SupportsListStyle() bool
	// Extension is the file extension without the leading dot.
	Extension() string
	// ContentType is the MIME type of the serialized bytes.
	ContentType() string
}

// Format names accepted by ForFormat.
const (
	FormatDOCX     = "docx"
	FormatMarkdown = "md"
)

// ForFormat returns the serializer for a format name. listStyle only affects
// DOCX output.
func ForFormat(format string, listStyle bool) (Serializer, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), ".")) {
	case "", FormatDOCX:
		return NewDOCX(WithListStyle(listStyle)), nil
	case FormatMarkdown, "markdown":
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
