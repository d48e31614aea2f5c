package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/advert-generator/internal/pipeline"
)

type formatOptions struct {
	out         string
	format      string
	styleFile   string
	noListStyle bool
}

func newFormatCmd(a *app) *cobra.Command {
	opts := &formatOptions{}
	cmd := &cobra.Command{
		Use:   "format <advert.txt|->",
		Short: "Format already-written advert text as a document",
		Long: "Format sanitizes advert text, bolds the house-style section headers and writes the document " +
			"without calling the language model. Use - to read the text from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output path (default: <output_dir>/<name>_advert.<ext>)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: docx or md")
	cmd.Flags().StringVar(&opts.styleFile, "style", "", "House style JSON or YAML file")
	cmd.Flags().BoolVar(&opts.noListStyle, "no-list-style", false, "Write bullets as glyphs instead of the List Bullet style")

	return cmd
}

func runFormat(cmd *cobra.Command, a *app, opts *formatOptions, input string) error {
	cfg := a.cfg

	var raw []byte
	var err error
	if input == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("failed to read advert text: %w", err)
	}

	styleFile := opts.styleFile
	if styleFile == "" {
		styleFile = cfg.StyleFile
	}
	style, err := loadStyle(styleFile)
	if err != nil {
		return err
	}

	p, closer, err := buildPipeline(cmd.Context(), cfg, pipelineSpec{
		style:       style,
		format:      opts.format,
		noListStyle: opts.noListStyle,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	data, err := p.Render(string(raw))
	if err != nil {
		return fmt.Errorf("failed to render advert: %w", err)
	}

	outputPath := opts.out
	if outputPath == "" {
		ext := p.Serializer().Extension()
		name := style.DownloadName(ext)
		if base := pipeline.BaseName(input); input != "-" && base != "" {
			name = base + "_advert." + ext
		}
		outputPath = filepath.Join(cfg.OutputDir, name)
	}
	if err := writeOutput(outputPath, data); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", outputPath)
	return nil
}
