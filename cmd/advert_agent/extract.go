package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/advert-generator/internal/ingestion"
	"github.com/jonathan/advert-generator/internal/pipeline"
)

type extractOptions struct {
	file     string
	url      string
	out      string
	metadata bool
}

func newExtractCmd(a *app) *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the text extracted from a job description",
		Long:  "Extract shows the text the generator would receive for a file or URL, without calling the language model.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExtract(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Job description file")
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "Job posting URL")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the text to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.metadata, "metadata", false, "Print source metadata as JSON after the text")
	cmd.MarkFlagsMutuallyExclusive("file", "url")
	cmd.MarkFlagsOneRequired("file", "url")

	return cmd
}

func runExtract(cmd *cobra.Command, a *app, opts *extractOptions) error {
	ctx := cmd.Context()

	var text string
	var meta *ingestion.Metadata
	var err error
	if opts.url != "" {
		text, meta, err = ingestion.IngestFromURL(ctx, opts.url, ingestion.URLOptions{UseBrowser: a.cfg.UseBrowser})
	} else {
		text, err = ingestion.ExtractFile(opts.file)
		if err == nil {
			meta = ingestion.NewMetadata(text, opts.file)
			if format, ferr := ingestion.DetectFormat(opts.file); ferr == nil {
				meta.Format = string(format)
			}
		}
	}
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}
	if text == "" {
		return pipeline.ErrNoTextExtracted
	}

	w := cmd.OutOrStdout()
	if opts.out != "" {
		if err := writeOutput(opts.out, []byte(text+"\n")); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Created %s\n", opts.out)
	} else {
		_, _ = fmt.Fprintln(w, text)
	}

	if opts.metadata {
		data, err := meta.ToJSON()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s\n", data)
	}
	return nil
}
