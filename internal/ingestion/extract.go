package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/advert-generator/internal/fetch"
)

// Format identifies a supported input document type.
type Format string

// Supported input formats.
const (
	FormatDOCX     Format = "docx"
	FormatPDF      Format = "pdf"
	FormatHTML     Format = "html"
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
)

// DetectFormat maps a file name to its input format by extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return FormatDOCX, nil
	case ".pdf":
		return FormatPDF, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".txt", ".text":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(name))
	}
}

// SupportedExtensions lists the accepted file extensions.
func SupportedExtensions() []string {
	return []string{".docx", ".pdf", ".html", ".htm", ".txt", ".md"}
}

// Extractor reads job description text out of uploaded files.
type Extractor struct{}

// NewExtractor returns a file extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text of the named document. It returns "" with a nil
// error when the document holds no recoverable text, such as an image-only
// PDF.
func (e *Extractor) Extract(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Extract(name, data)
}

// Extract dispatches on the file extension of name.
func Extract(name string, data []byte) (string, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatHTML:
		text, err = fetch.ExtractMainText(string(data), fetch.JobPostingSelectors())
	default:
		text = CleanText(string(data))
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", filepath.Base(name), err)
	}

	return strings.TrimSpace(text), nil
}

// ExtractFile reads and extracts a document from disk.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return Extract(path, data)
}
