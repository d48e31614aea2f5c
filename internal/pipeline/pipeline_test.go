package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/advert-generator/internal/document"
	"github.com/jonathan/advert-generator/internal/headers"
	"github.com/jonathan/advert-generator/internal/rendering"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls []string
	fn    func(text string) (string, error)
}

func (f *fakeGenerator) Generate(_ context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(text)
	}
	return "**Job Title:** " + text + "\n- Run assays", nil
}

type fakeExtractor map[string]struct {
	text string
	err  error
}

func (f fakeExtractor) Extract(_ context.Context, name string, _ []byte) (string, error) {
	r := f[name]
	return r.text, r.err
}

type fakeRecorder struct {
	mu      sync.Mutex
	items   []Item
	batches []uuid.UUID
	err     error
}

func (f *fakeRecorder) RecordItem(_ context.Context, batchID uuid.UUID, item *Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, *item)
	f.batches = append(f.batches, batchID)
	return nil
}

func TestProcess_Scenarios(t *testing.T) {
	p := New()

	doc := p.Process("## Summary\r\n- Do X\r\n- Do Y\r\n")
	require.Len(t, doc.Paragraphs, 3)
	assert.Equal(t, "Summary", doc.Paragraphs[0].Text())
	assert.True(t, doc.Paragraphs[1].IsList())
	assert.Equal(t, "Do Y", doc.Paragraphs[2].Text())

	doc = p.Process("Location: Hybrid – EMEAI")
	require.Len(t, doc.Paragraphs, 1)
	assert.Equal(t, []document.Run{
		{Text: "Location:", Bold: true},
		{Text: " Hybrid - EMEAI"},
	}, doc.Paragraphs[0].Runs)
}

func TestProcess_LineCountPreserved(t *testing.T) {
	p := New()
	inputs := []string{
		"",
		"one",
		"**Bold** line\n\n\n- bullet\n  \nLocation:",
		"  leading and trailing  \n\n",
		"a\r\nb\rc",
	}
	for _, raw := range inputs {
		doc := p.Process(raw)
		lines := strings.Split(strings.TrimSpace(strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(raw)), "\n")
		assert.Len(t, doc.Paragraphs, len(lines), "input %q", raw)
	}
}

func TestProcess_AlternateHeaders(t *testing.T) {
	set, err := headers.NewSet("Perks")
	require.NoError(t, err)

	doc := New(WithHeaders(set)).Process("Perks: free lunch\nLocation: Remote")
	require.Len(t, doc.Paragraphs, 2)
	assert.True(t, doc.Paragraphs[0].Runs[0].Bold)
	assert.Equal(t, []document.Run{{Text: "Location: Remote"}}, doc.Paragraphs[1].Runs)
}

func TestRender(t *testing.T) {
	p := New(WithSerializer(rendering.NewMarkdown()))

	out, err := p.Render("Benefits\n- Pension")
	require.NoError(t, err)
	assert.Equal(t, "**Benefits:**\n\n- Pension\n", string(out))
}

func TestConvert_FromText(t *testing.T) {
	gen := &fakeGenerator{}
	p := New(WithGenerator(gen), WithSerializer(rendering.NewMarkdown()))

	out, err := p.Convert(context.Background(), Input{Name: "chemist.docx", Text: "Chemist"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Chemist"}, gen.calls)
	assert.Equal(t, "chemist_advert.md", out.FileName)
	assert.Equal(t, "Job Title: Chemist\n- Run assays", out.AdvertText)
	assert.Equal(t, "**Job Title:** Chemist\n\n- Run assays\n", string(out.Bytes))
	assert.Equal(t, "text/markdown; charset=utf-8", out.ContentType)
	assert.NotEqual(t, uuid.Nil, out.ID)
}

func TestConvert_DefaultName(t *testing.T) {
	p := New(WithGenerator(&fakeGenerator{}), WithDefaultName("neogen_job_advert"))

	out, err := p.Convert(context.Background(), Input{Text: "Chemist"})
	require.NoError(t, err)
	assert.Equal(t, "neogen_job_advert.docx", out.FileName)
}

func TestConvert_FromFileAndURL(t *testing.T) {
	extractor := fakeExtractor{"jd.pdf": {text: "From PDF"}}
	var fetched string
	p := New(
		WithGenerator(&fakeGenerator{}),
		WithExtractor(extractor),
		WithURLIngester(func(_ context.Context, url string) (string, error) {
			fetched = url
			return "From URL", nil
		}),
	)

	out, err := p.Convert(context.Background(), Input{Name: "jd.pdf", Data: []byte("%PDF")})
	require.NoError(t, err)
	assert.Equal(t, "From PDF", out.SourceText)

	out, err = p.Convert(context.Background(), Input{URL: "https://jobs.example.com/1"})
	require.NoError(t, err)
	assert.Equal(t, "From URL", out.SourceText)
	assert.Equal(t, "https://jobs.example.com/1", fetched)
}

func TestConvert_Failures(t *testing.T) {
	boom := errors.New("service unavailable")

	tests := []struct {
		name   string
		p      *Pipeline
		input  Input
		stage  Stage
		target error
	}{
		{
			name:   "empty extraction",
			p:      New(WithGenerator(&fakeGenerator{}), WithExtractor(fakeExtractor{})),
			input:  Input{Name: "scan.pdf", Data: []byte("x")},
			stage:  StageExtract,
			target: ErrNoTextExtracted,
		},
		{
			name:   "extraction error",
			p:      New(WithGenerator(&fakeGenerator{}), WithExtractor(fakeExtractor{"bad.docx": {err: boom}})),
			input:  Input{Name: "bad.docx", Data: []byte("x")},
			stage:  StageExtract,
			target: boom,
		},
		{
			name:   "generation error",
			p:      New(WithGenerator(&fakeGenerator{fn: func(string) (string, error) { return "", boom }})),
			input:  Input{Text: "Chemist"},
			stage:  StageGenerate,
			target: boom,
		},
		{
			name:   "no generator",
			p:      New(),
			input:  Input{Text: "Chemist"},
			stage:  StageGenerate,
			target: ErrNoGenerator,
		},
		{
			name:   "empty input",
			p:      New(WithGenerator(&fakeGenerator{})),
			input:  Input{},
			stage:  StageExtract,
			target: ErrEmptyInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.p.Convert(context.Background(), tt.input)
			assert.Nil(t, out)
			require.ErrorIs(t, err, tt.target)

			var itemErr *ItemError
			require.ErrorAs(t, err, &itemErr)
			assert.Equal(t, tt.stage, itemErr.Stage)
		})
	}
}

func TestConvert_Records(t *testing.T) {
	rec := &fakeRecorder{}
	p := New(WithGenerator(&fakeGenerator{}), WithRecorder(rec))

	out, err := p.Convert(context.Background(), Input{Text: "Chemist"})
	require.NoError(t, err)

	require.Len(t, rec.items, 1)
	assert.Equal(t, out.ID, rec.items[0].ID)
	assert.Equal(t, uuid.Nil, rec.batches[0])

	_, err = New(WithRecorder(rec)).Convert(context.Background(), Input{Text: "Chemist"})
	require.Error(t, err)
	require.Len(t, rec.items, 2)
	assert.Equal(t, StatusFailed, rec.items[1].Status)
}

func TestConvert_RecorderErrorIgnored(t *testing.T) {
	p := New(WithGenerator(&fakeGenerator{}), WithRecorder(&fakeRecorder{err: errors.New("db down")}))

	out, err := p.Convert(context.Background(), Input{Text: "Chemist"})
	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "job", BaseName("job.docx"))
	assert.Equal(t, "job.v2", BaseName("/uploads/job.v2.pdf"))
	assert.Equal(t, "README", BaseName("README"))
	assert.Equal(t, "", BaseName("  "))
}
