// Package ingestion recovers plain job description text from uploaded
// documents and job posting URLs.
package ingestion

import "errors"

var (
	// ErrUnsupportedFormat is returned for file types that cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported file type: upload a .docx or .pdf file")
	// ErrCorruptDocument is returned when a document cannot be parsed.
	ErrCorruptDocument = errors.New("document could not be read")
	// ErrHTTPRequestFailed is returned when a URL cannot be fetched.
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when page text cannot be extracted.
	ErrContentExtractionFailed = errors.New("content extraction failed")
)
