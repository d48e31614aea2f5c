// Package server provides the HTTP API for generating job adverts.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/advert-generator/internal/ingestion"
	"github.com/jonathan/advert-generator/internal/llm"
	"github.com/jonathan/advert-generator/internal/pipeline"
	"github.com/jonathan/advert-generator/internal/rewriting"
)

var (
	// ErrHistoryDisabled is returned by history endpoints when no database is configured.
	ErrHistoryDisabled = errors.New("advert history is not enabled")
	// ErrNotFound is returned when a requested advert does not exist.
	ErrNotFound = errors.New("advert not found")
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var apiErr *rewriting.APICallError
	var emptyErr *rewriting.EmptyResponseError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, pipeline.ErrNoTextExtracted), errors.Is(err, ingestion.ErrCorruptDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrHistoryDisabled), errors.Is(err, pipeline.ErrNoGenerator), errors.Is(err, llm.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, ingestion.ErrHTTPRequestFailed), errors.Is(err, ingestion.ErrContentExtractionFailed),
		errors.As(err, &apiErr), errors.As(err, &emptyErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
