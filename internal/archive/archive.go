// Package archive packs batch results into a single zip download.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/advert-generator/internal/pipeline"
)

// ContentType is the MIME type of a packaged batch.
const ContentType = "application/zip"

// SuccessName is the archive entry name for a converted input.
func SuccessName(name, ext string) string {
	return base(name) + "_advert." + strings.TrimPrefix(ext, ".")
}

// FailureName is the archive entry name for an input that could not be
// converted.
func FailureName(name string) string {
	return base(name) + "_ERROR.txt"
}

func base(name string) string {
	if b := pipeline.BaseName(name); b != "" {
		return b
	}
	return "advert"
}

// Entry describes one file in a packaged batch.
type Entry struct {
	Name   string
	Status pipeline.Status
}

// Package writes every batch item to a zip archive in input order. Successful
// items hold the serialized document; the rest hold their failure reason.
func Package(result *pipeline.BatchResult) ([]byte, error) {
	data, _, err := PackageWithManifest(result)
	return data, err
}

// PackageWithManifest is Package plus the list of entries written.
func PackageWithManifest(result *pipeline.BatchResult) ([]byte, []Entry, error) {
	if result == nil {
		return nil, nil, fmt.Errorf("batch result is nil")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]int)
	entries := make([]Entry, 0, len(result.Items))
	modified := time.Now()

	for _, item := range result.Items {
		var name string
		var content []byte
		if item.OK() && item.Output != nil {
			name = SuccessName(item.Name, result.Extension)
			content = item.Output.Bytes
		} else {
			name = FailureName(item.Name)
			content = []byte(failureText(item))
		}
		name = unique(used, name)

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, nil, fmt.Errorf("failed to write %s to archive: %w", name, err)
		}
		entries = append(entries, Entry{Name: name, Status: item.Status})
	}

	if err := zw.Close(); err != nil {
		return nil, nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), entries, nil
}

func failureText(item pipeline.Item) string {
	reason := item.Reason
	if reason == "" {
		reason = "unknown error"
	}
	return reason + "\n"
}

// unique suffixes repeated entry names: a.docx, a_2.docx, a_3.docx.
func unique(used map[string]int, name string) string {
	used[name]++
	n := used[name]
	if n == 1 {
		return name
	}
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		dot = len(name)
	}
	candidate := fmt.Sprintf("%s_%d%s", name[:dot], n, name[dot:])
	return unique(used, candidate)
}
