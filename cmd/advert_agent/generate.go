package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/advert-generator/internal/observability"
	"github.com/jonathan/advert-generator/internal/pipeline"
)

type generateOptions struct {
	file        string
	url         string
	text        string
	out         string
	format      string
	styleFile   string
	noListStyle bool
	print       bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a job advert from one job description",
		Long: "Generate rewrites a job description (a .docx, .pdf, .html, .txt or .md file, a job posting URL, " +
			"or inline text) into a house-style job advert and writes it as a document.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Job description file")
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "Job posting URL")
	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "Job description text, or - to read stdin")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output path (default: <output_dir>/<name>_advert.<ext>)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: docx or md")
	cmd.Flags().StringVar(&opts.styleFile, "style", "", "House style JSON or YAML file")
	cmd.Flags().BoolVar(&opts.noListStyle, "no-list-style", false, "Write bullets as glyphs instead of the List Bullet style")
	cmd.Flags().BoolVar(&opts.print, "print", false, "Also print the advert text to stdout")
	cmd.MarkFlagsMutuallyExclusive("file", "url", "text")
	cmd.MarkFlagsOneRequired("file", "url", "text")

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions) error {
	ctx := cmd.Context()
	cfg := a.cfg

	in, err := generateInput(cmd.InOrStdin(), opts)
	if err != nil {
		return err
	}

	styleFile := opts.styleFile
	if styleFile == "" {
		styleFile = cfg.StyleFile
	}
	style, err := loadStyle(styleFile)
	if err != nil {
		return err
	}

	p, closer, err := buildPipeline(ctx, cfg, pipelineSpec{
		style:       style,
		format:      opts.format,
		noListStyle: opts.noListStyle,
		generate:    true,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	out, err := p.Convert(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to generate advert: %w", err)
	}

	outputPath := opts.out
	if outputPath == "" {
		outputPath = filepath.Join(cfg.OutputDir, out.FileName)
	}
	if err := writeOutput(outputPath, out.Bytes); err != nil {
		return err
	}

	if a.verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintSource(out.Name, out.SourceText)
		printer.PrintAdvert(out.Document, style.Check(out.AdvertText))
	}

	w := cmd.OutOrStdout()
	if opts.print {
		_, _ = fmt.Fprintf(w, "%s\n\n", out.AdvertText)
	}
	_, _ = fmt.Fprintf(w, "Created %s\n", outputPath)
	return nil
}

func generateInput(stdin io.Reader, opts *generateOptions) (pipeline.Input, error) {
	switch {
	case opts.file != "":
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return pipeline.Input{}, fmt.Errorf("failed to read job description: %w", err)
		}
		return pipeline.Input{Name: opts.file, Data: data}, nil
	case opts.url != "":
		return pipeline.Input{URL: opts.url}, nil
	case opts.text == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return pipeline.Input{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return pipeline.Input{}, fmt.Errorf("stdin is empty")
		}
		return pipeline.Input{Text: string(data)}, nil
	default:
		return pipeline.Input{Text: opts.text}, nil
	}
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
