package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTextExtracted is returned when an input yields no usable text.
	ErrNoTextExtracted = errors.New("no text could be extracted, try a different file")
	// ErrNoGenerator is returned when conversion needs a generator and none is configured.
	ErrNoGenerator = errors.New("no advert generator configured")
	// ErrEmptyInput is returned when an input carries no file, text or URL.
	ErrEmptyInput = errors.New("input has no file, text or URL")
)

// Stage names the pipeline step an item failed in.
type Stage string

// Pipeline stages.
const (
	StageExtract   Stage = "extract"
	StageGenerate  Stage = "generate"
	StageSerialize Stage = "serialize"
)

// ItemError reports which stage failed for a named input.
type ItemError struct {
	Name  string
	Stage Stage
	Cause error
}

func (e *ItemError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Name, e.Stage, e.Cause)
}

func (e *ItemError) Unwrap() error {
	return e.Cause
}
