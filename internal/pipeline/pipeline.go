// Package pipeline turns generated advert text into finished documents, for
// one job description at a time or for a batch of them.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/advert-generator/internal/document"
	"github.com/jonathan/advert-generator/internal/headers"
	"github.com/jonathan/advert-generator/internal/rendering"
	"github.com/jonathan/advert-generator/internal/sanitize"
)

// Generator rewrites a job description as advert text.
type Generator interface {
	Generate(ctx context.Context, jobDescription string) (string, error)
}

// Extractor recovers job description text from a named file. It returns ""
// and a nil error when the file holds no text.
type Extractor interface {
	Extract(ctx context.Context, name string, data []byte) (string, error)
}

// URLIngester fetches a job posting page and returns its text.
type URLIngester func(ctx context.Context, url string) (string, error)

// Recorder stores processed items, for example in an advert history table.
type Recorder interface {
	RecordItem(ctx context.Context, batchID uuid.UUID, item *Item) error
}

// Input is one job description to convert. Exactly one of Data, Path, Text or
// URL is normally set; Text wins over URL, URL over Data, and Data over Path.
// A Path is read when the item runs, so an unreadable file fails only its own
// item.
type Input struct {
	Name string
	Data []byte
	Path string
	Text string
	URL  string
}

// Output is a converted advert.
type Output struct {
	ID          uuid.UUID
	Name        string
	FileName    string
	SourceText  string
	AdvertText  string
	Document    *document.Document
	Bytes       []byte
	ContentType string
}

// ProgressEvent reports the outcome of one batch item.
type ProgressEvent struct {
	Index  int    `json:"index"`
	Total  int    `json:"total"`
	Name   string `json:"name"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// ProgressCallback is called after each batch item completes. Calls may come
// from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// DefaultWorkers is the batch concurrency used when none is configured.
const DefaultWorkers = 4

// Pipeline composes extraction, generation, sanitizing, document building and
// serialization.
type Pipeline struct {
	builder     *document.Builder
	serializer  rendering.Serializer
	generator   Generator
	extractor   Extractor
	urlIngester URLIngester
	recorder    Recorder
	onProgress  ProgressCallback
	workers     int
	defaultName string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithHeaders sets the section header set used by the document builder.
func WithHeaders(set *headers.Set) Option {
	return func(p *Pipeline) { p.builder = document.NewBuilder(set) }
}

// WithSerializer sets the output format.
func WithSerializer(s rendering.Serializer) Option {
	return func(p *Pipeline) { p.serializer = s }
}

// WithGenerator sets the advert generation service.
func WithGenerator(g Generator) Option {
	return func(p *Pipeline) { p.generator = g }
}

// WithExtractor sets the file text extractor.
func WithExtractor(e Extractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// WithURLIngester enables URL inputs.
func WithURLIngester(fn URLIngester) Option {
	return func(p *Pipeline) { p.urlIngester = fn }
}

// WithRecorder stores every converted item.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithProgress sets the batch progress callback.
func WithProgress(fn ProgressCallback) Option {
	return func(p *Pipeline) { p.onProgress = fn }
}

// WithWorkers sets how many batch items are converted concurrently.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithDefaultName sets the file name used for unnamed inputs, without
// extension, e.g. "neogen_job_advert".
func WithDefaultName(name string) Option {
	return func(p *Pipeline) {
		if name != "" {
			p.defaultName = name
		}
	}
}

// New returns a Pipeline. Without options it builds documents with the default
// header set and serializes to DOCX with list styles.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		builder:     document.NewBuilder(nil),
		serializer:  rendering.NewDOCX(),
		workers:     DefaultWorkers,
		defaultName: "job_advert",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Serializer returns the configured serializer.
func (p *Pipeline) Serializer() rendering.Serializer {
	return p.serializer
}

// Process sanitizes raw generated text and builds its document. It never fails.
func (p *Pipeline) Process(raw string) *document.Document {
	return p.builder.Build(sanitize.Sanitize(raw))
}

// Render processes raw generated text and serializes the document.
func (p *Pipeline) Render(raw string) ([]byte, error) {
	return p.serializer.Serialize(p.Process(raw))
}

// Convert runs the whole pipeline for one input. Failures are returned with
// no partial output. A configured recorder sees both outcomes.
func (p *Pipeline) Convert(ctx context.Context, in Input) (*Output, error) {
	item := p.run(ctx, 0, in)
	p.record(ctx, uuid.Nil, &item)
	if item.Err != nil {
		return nil, item.Err
	}
	return item.Output, nil
}

// run converts one input into an Item, classifying any failure.
func (p *Pipeline) run(ctx context.Context, index int, in Input) Item {
	start := time.Now()
	item := Item{
		ID:    uuid.New(),
		Index: index,
		Name:  p.inputName(in),
	}

	out, err := p.convert(ctx, in)
	item.Duration = time.Since(start)
	switch {
	case err == nil:
		out.ID = item.ID
		item.Status = StatusSuccess
		item.Output = out
	case errors.Is(err, ErrNoTextExtracted):
		item.Status = StatusSkipped
		item.Err = err
		item.Reason = err.Error()
	default:
		item.Status = StatusFailed
		item.Err = err
		item.Reason = err.Error()
	}
	return item
}

func (p *Pipeline) convert(ctx context.Context, in Input) (*Output, error) {
	in.Name = p.inputName(in)
	source, err := p.sourceText(ctx, in)
	if err != nil {
		return nil, &ItemError{Name: in.Name, Stage: StageExtract, Cause: err}
	}
	if strings.TrimSpace(source) == "" {
		return nil, &ItemError{Name: in.Name, Stage: StageExtract, Cause: ErrNoTextExtracted}
	}

	if p.generator == nil {
		return nil, &ItemError{Name: in.Name, Stage: StageGenerate, Cause: ErrNoGenerator}
	}
	advert, err := p.generator.Generate(ctx, source)
	if err != nil {
		return nil, &ItemError{Name: in.Name, Stage: StageGenerate, Cause: err}
	}

	doc := p.Process(advert)
	data, err := p.serializer.Serialize(doc)
	if err != nil {
		return nil, &ItemError{Name: in.Name, Stage: StageSerialize, Cause: err}
	}

	return &Output{
		Name:        in.Name,
		FileName:    p.fileName(in.Name),
		SourceText:  source,
		AdvertText:  sanitize.Sanitize(advert),
		Document:    doc,
		Bytes:       data,
		ContentType: p.serializer.ContentType(),
	}, nil
}

func (p *Pipeline) sourceText(ctx context.Context, in Input) (string, error) {
	switch {
	case in.Text != "":
		return in.Text, nil
	case in.URL != "":
		if p.urlIngester == nil {
			return "", errors.New("URL inputs are not enabled")
		}
		return p.urlIngester(ctx, in.URL)
	case len(in.Data) > 0:
		if p.extractor == nil {
			return "", errors.New("no extractor configured")
		}
		return p.extractor.Extract(ctx, in.Name, in.Data)
	case in.Path != "":
		data, err := os.ReadFile(in.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		if len(data) == 0 {
			return "", nil
		}
		if p.extractor == nil {
			return "", errors.New("no extractor configured")
		}
		return p.extractor.Extract(ctx, p.inputName(in), data)
	case in.Name != "":
		// A named but empty upload has nothing to extract.
		return "", nil
	default:
		return "", ErrEmptyInput
	}
}

// inputName falls back to the path when an input has no name.
func (p *Pipeline) inputName(in Input) string {
	if in.Name == "" {
		return in.Path
	}
	return in.Name
}

func (p *Pipeline) fileName(name string) string {
	ext := p.serializer.Extension()
	if base := BaseName(name); base != "" {
		return base + "_advert." + ext
	}
	return p.defaultName + "." + ext
}

func (p *Pipeline) record(ctx context.Context, batchID uuid.UUID, item *Item) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.RecordItem(ctx, batchID, item); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("item", item.Name).Msg("failed to record advert")
		return
	}
	item.Recorded = true
}

// BaseName strips the directory and extension from an input name.
func BaseName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
