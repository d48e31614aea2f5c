package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/advert-generator/internal/pipeline"
)

func readZip(t *testing.T, data []byte) ([]string, map[string]string) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	contents := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		names = append(names, f.Name)
		contents[f.Name] = string(body)
	}
	return names, contents
}

func TestNames(t *testing.T) {
	assert.Equal(t, "chemist_advert.docx", SuccessName("chemist.docx", "docx"))
	assert.Equal(t, "chemist_advert.md", SuccessName("/tmp/chemist.pdf", ".md"))
	assert.Equal(t, "chemist_ERROR.txt", FailureName("chemist.pdf"))
	assert.Equal(t, "advert_ERROR.txt", FailureName(""))
}

func TestPackage(t *testing.T) {
	result := &pipeline.BatchResult{
		Extension: "docx",
		Items: []pipeline.Item{
			{Name: "one.docx", Status: pipeline.StatusSuccess, Output: &pipeline.Output{Bytes: []byte("doc one")}},
			{Name: "two.pdf", Status: pipeline.StatusSkipped, Reason: "two.pdf: extract failed: no text could be extracted, try a different file"},
			{Name: "three.docx", Status: pipeline.StatusSuccess, Output: &pipeline.Output{Bytes: []byte("doc three")}},
		},
	}

	data, entries, err := PackageWithManifest(result)
	require.NoError(t, err)

	names, contents := readZip(t, data)
	assert.Equal(t, []string{"one_advert.docx", "two_ERROR.txt", "three_advert.docx"}, names)
	assert.Equal(t, "doc one", contents["one_advert.docx"])
	assert.Contains(t, contents["two_ERROR.txt"], "no text could be extracted")
	require.Len(t, entries, 3)
	assert.Equal(t, pipeline.StatusSkipped, entries[1].Status)
}

func TestPackage_DuplicateNames(t *testing.T) {
	result := &pipeline.BatchResult{
		Extension: "md",
		Items: []pipeline.Item{
			{Name: "a/job.pdf", Status: pipeline.StatusSuccess, Output: &pipeline.Output{Bytes: []byte("1")}},
			{Name: "b/job.docx", Status: pipeline.StatusSuccess, Output: &pipeline.Output{Bytes: []byte("2")}},
			{Name: "job.txt", Status: pipeline.StatusFailed},
		},
	}

	data, err := Package(result)
	require.NoError(t, err)

	names, contents := readZip(t, data)
	assert.Equal(t, []string{"job_advert.md", "job_advert_2.md", "job_ERROR.txt"}, names)
	assert.Equal(t, "2", contents["job_advert_2.md"])
	assert.Equal(t, "unknown error\n", contents["job_ERROR.txt"])
}

func TestPackage_Empty(t *testing.T) {
	data, err := Package(&pipeline.BatchResult{})
	require.NoError(t, err)

	names, _ := readZip(t, data)
	assert.Empty(t, names)

	_, err = Package(nil)
	assert.Error(t, err)
}
