package ingestion

import (
	"context"
	"fmt"

	"github.com/jonathan/advert-generator/internal/fetch"
	"github.com/rs/zerolog/log"
)

// URLOptions configures IngestFromURL.
type URLOptions struct {
	// UseBrowser re-renders pages whose plain fetch yields too little text.
	UseBrowser bool
	// Fetch overrides the HTTP fetch options.
	Fetch *fetch.Options
}

// IngestFromURL fetches a job posting page and returns its cleaned main text.
// Platform-specific selectors are used for known job boards.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	logger := log.Ctx(ctx).With().Str("url", urlStr).Logger()

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug().Str("platform", string(platform)).Msg("fetching job posting")

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	logger.Debug().Int("chars", len(text)).Msg("extracted page text")

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		logger.Debug().Int("min", fetch.MinContentLength).Msg("page text too short, rendering in browser")
		rendered, browserErr := fetch.BrowserSimple(ctx, urlStr)
		if browserErr != nil {
			logger.Warn().Err(browserErr).Msg("browser rendering failed, keeping HTTP content")
		} else if browserText, err := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); err == nil {
			text = browserText
		}
	}

	cleaned := CleanText(text)
	metadata := NewMetadata(cleaned, urlStr)
	metadata.Format = string(FormatHTML)
	metadata.Platform = string(platform)

	return cleaned, metadata, nil
}
