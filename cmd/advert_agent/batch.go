package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/jonathan/advert-generator/internal/archive"
	"github.com/jonathan/advert-generator/internal/ingestion"
	"github.com/jonathan/advert-generator/internal/observability"
	"github.com/jonathan/advert-generator/internal/pipeline"
)

type batchOptions struct {
	dir         string
	out         string
	format      string
	styleFile   string
	noListStyle bool
	workers     int
	quiet       bool
}

func newBatchCmd(a *app) *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "Generate job adverts for many job descriptions",
		Long: "Batch converts every given job description file (or every supported file in --dir) " +
			"and packs the adverts into one zip archive. A file that fails gets an <name>_ERROR.txt entry " +
			"instead, and the rest of the batch carries on.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Directory of job description files")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Zip output path (default: <output_dir>/<company>_job_adverts.zip)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: docx or md")
	cmd.Flags().StringVar(&opts.styleFile, "style", "", "House style JSON or YAML file")
	cmd.Flags().BoolVar(&opts.noListStyle, "no-list-style", false, "Write bullets as glyphs instead of the List Bullet style")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Concurrent conversions (0 = auto)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only print failures and the summary")

	return cmd
}

func runBatch(cmd *cobra.Command, a *app, opts *batchOptions, args []string) error {
	ctx := cmd.Context()
	cfg := a.cfg
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	paths, err := collectInputs(args, opts.dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no job description files given (supported: %s)", strings.Join(ingestion.SupportedExtensions(), ", "))
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if a.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			_, _ = fmt.Fprintf(stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}
	workers := resolvePoolSize(opts.workers, cfg.Workers)

	styleFile := opts.styleFile
	if styleFile == "" {
		styleFile = cfg.StyleFile
	}
	style, err := loadStyle(styleFile)
	if err != nil {
		return err
	}

	inputs := make([]pipeline.Input, 0, len(paths))
	for _, path := range paths {
		inputs = append(inputs, pipeline.Input{Name: path, Path: path})
	}

	var mu sync.Mutex
	progress := func(e pipeline.ProgressEvent) {
		if opts.quiet {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		_, _ = fmt.Fprintf(stderr, "[%d/%d] %s: %s\n", e.Index+1, e.Total, e.Name, e.Status)
	}

	p, closer, err := buildPipeline(ctx, cfg, pipelineSpec{
		style:       style,
		format:      opts.format,
		noListStyle: opts.noListStyle,
		workers:     workers,
		generate:    true,
		deferGenErr: true,
		progress:    progress,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	result := p.Batch(ctx, inputs)
	data, entries, err := archive.PackageWithManifest(result)
	if err != nil {
		return err
	}

	outputPath := opts.out
	if outputPath == "" {
		outputPath = filepath.Join(cfg.OutputDir, style.FilePrefix()+"_job_adverts.zip")
	}
	if err := writeOutput(outputPath, data); err != nil {
		return err
	}

	if a.verbose {
		observability.NewPrinter(stderr).PrintBatch(result)
	}
	printBatchResult(stdout, stderr, result, entries, opts.quiet)
	_, _ = fmt.Fprintf(stdout, "Archive %s\n", outputPath)
	return nil
}

// printBatchResult writes one line per item and the summary.
func printBatchResult(stdout, stderr io.Writer, result *pipeline.BatchResult, entries []archive.Entry, quiet bool) {
	for i, item := range result.Items {
		switch item.Status {
		case pipeline.StatusSuccess:
			if !quiet {
				_, _ = fmt.Fprintf(stdout, "Created %s\n", entries[i].Name)
			}
		case pipeline.StatusSkipped:
			_, _ = fmt.Fprintf(stderr, "SKIPPED %s: %s\n", item.Name, item.Reason)
		default:
			_, _ = fmt.Fprintf(stderr, "FAILED %s: %s\n", item.Name, item.Reason)
		}
	}
	_, _ = fmt.Fprintf(stdout, "\n%s\n", result.Summary())
}

// collectInputs returns the files named in args plus the supported files in
// dir, in a stable order.
func collectInputs(args []string, dir string) ([]string, error) {
	paths := slices.Clone(args)
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		var found []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if _, err := ingestion.DetectFormat(entry.Name()); err != nil {
				continue
			}
			found = append(found, filepath.Join(dir, entry.Name()))
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}
