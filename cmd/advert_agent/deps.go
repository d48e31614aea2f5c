package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/jonathan/advert-generator/internal/config"
	"github.com/jonathan/advert-generator/internal/housestyle"
	"github.com/jonathan/advert-generator/internal/ingestion"
	"github.com/jonathan/advert-generator/internal/llm"
	"github.com/jonathan/advert-generator/internal/pipeline"
	"github.com/jonathan/advert-generator/internal/rendering"
	"github.com/jonathan/advert-generator/internal/rewriting"
)

// newGenerator builds the advert generator. Tests replace it with a fake.
var newGenerator = func(ctx context.Context, cfg config.Config, style housestyle.Style) (pipeline.Generator, io.Closer, error) {
	llmCfg := llm.DefaultConfig().WithSystemInstruction(rewriting.SystemInstruction())
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(style.Tier(), cfg.Model)
	}
	if cfg.Temperature > 0 {
		llmCfg.Temperature = cfg.Temperature
	}
	if cfg.MaxOutputTokens > 0 {
		llmCfg.MaxOutputTokens = cfg.MaxOutputTokens
	}

	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return rewriting.NewGenerator(client, style), client, nil
}

// loadStyle reads the configured house style, or returns the default one.
func loadStyle(path string) (housestyle.Style, error) {
	if path == "" {
		return housestyle.Default(), nil
	}
	return housestyle.Load(path)
}

// pipelineSpec describes the pipeline a command needs.
type pipelineSpec struct {
	style       housestyle.Style
	format      string
	noListStyle bool
	workers     int
	generate    bool
	deferGenErr bool
	progress    pipeline.ProgressCallback
	recorder    pipeline.Recorder
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// unavailableGenerator fails every item with the reason no generator could
// be built.
type unavailableGenerator struct {
	err error
}

func (g unavailableGenerator) Generate(context.Context, string) (string, error) {
	return "", g.err
}

// buildPipeline wires the extractor, URL ingestion, serializer and, when
// requested, the generator into a pipeline. The returned closer releases the
// LLM client. With deferGenErr, missing credentials fail each item instead of
// the whole command.
func buildPipeline(ctx context.Context, cfg config.Config, spec pipelineSpec) (*pipeline.Pipeline, io.Closer, error) {
	set, err := spec.style.HeaderSet()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid house style headers: %w", err)
	}

	format := spec.format
	if format == "" {
		format = cfg.Format
	}
	serializer, err := rendering.ForFormat(format, !(spec.noListStyle || cfg.NoListStyle))
	if err != nil {
		return nil, nil, err
	}

	useBrowser := cfg.UseBrowser
	opts := []pipeline.Option{
		pipeline.WithHeaders(set),
		pipeline.WithSerializer(serializer),
		pipeline.WithExtractor(ingestion.NewExtractor()),
		pipeline.WithURLIngester(func(ctx context.Context, url string) (string, error) {
			text, _, err := ingestion.IngestFromURL(ctx, url, ingestion.URLOptions{UseBrowser: useBrowser})
			return text, err
		}),
		pipeline.WithDefaultName(spec.style.FilePrefix() + "_job_advert"),
		pipeline.WithWorkers(spec.workers),
	}
	if spec.progress != nil {
		opts = append(opts, pipeline.WithProgress(spec.progress))
	}
	if spec.recorder != nil {
		opts = append(opts, pipeline.WithRecorder(spec.recorder))
	}

	var closer io.Closer = nopCloser{}
	if spec.generate {
		gen, c, err := newGenerator(ctx, cfg, spec.style)
		switch {
		case err != nil && spec.deferGenErr && errors.Is(err, llm.ErrMissingAPIKey):
			gen, c = unavailableGenerator{err: err}, nil
		case err != nil:
			return nil, nil, err
		}
		opts = append(opts, pipeline.WithGenerator(gen))
		if c != nil {
			closer = c
		}
	}

	return pipeline.New(opts...), closer, nil
}

// resolvePoolSize determines the batch worker count.
// Priority: explicit flag > config > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers, cfgWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if cfgWorkers > 0 {
		return cfgWorkers
	}

	// GOMAXPROCS is container-aware once maxprocs.Set has run
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > pipeline.DefaultWorkers*2 {
		return pipeline.DefaultWorkers * 2
	}
	return n
}
