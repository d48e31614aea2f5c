package ingestion

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// extractDOCX returns the non-empty paragraphs of a Word document joined
// with newlines.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}
	defer func() { _ = doc.Close() }()

	paragraphs, err := wordParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// wordParagraphs walks word/document.xml and returns the text of each
// paragraph that is not blank. Tabs and line breaks inside a paragraph are
// kept as a tab and a space.
func wordParagraphs(documentXML string) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		paragraphs []string
		current    strings.Builder
		depth      int
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = true
			case "tab":
				current.WriteString("\t")
			case "br", "cr":
				current.WriteString(" ")
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				depth--
				if depth == 0 {
					if text := strings.TrimSpace(current.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}
				}
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
