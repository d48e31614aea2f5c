package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Status is the outcome of one batch item.
type Status string

// Item outcomes.
const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Item is the result for one input. Output is set only on success; Reason is
// the human-readable failure otherwise.
type Item struct {
	ID       uuid.UUID
	Index    int
	Name     string
	Status   Status
	Output   *Output
	Reason   string
	Err      error
	Duration time.Duration
	Recorded bool
}

// OK reports whether the item produced a document.
func (i *Item) OK() bool {
	return i.Status == StatusSuccess
}

// BatchResult holds batch items in input order.
type BatchResult struct {
	ID        uuid.UUID
	Items     []Item
	Extension string
}

// Succeeded returns the successful items in order.
func (r *BatchResult) Succeeded() []Item {
	return r.filter(func(i *Item) bool { return i.OK() })
}

// Failed returns the skipped and failed items in order.
func (r *BatchResult) Failed() []Item {
	return r.filter(func(i *Item) bool { return !i.OK() })
}

// Skipped returns the items that yielded no text.
func (r *BatchResult) Skipped() []Item {
	return r.filter(func(i *Item) bool { return i.Status == StatusSkipped })
}

func (r *BatchResult) filter(keep func(*Item) bool) []Item {
	var items []Item
	for i := range r.Items {
		if keep(&r.Items[i]) {
			items = append(items, r.Items[i])
		}
	}
	return items
}

// Summary reads e.g. "2 succeeded, 1 failed".
func (r *BatchResult) Summary() string {
	return fmt.Sprintf("%d succeeded, %d failed", len(r.Succeeded()), len(r.Failed()))
}

// Batch converts every input independently. Item failures are recorded in the
// result and never stop the other items. Items are returned in input order
// whatever order they finish in.
func (p *Pipeline) Batch(ctx context.Context, inputs []Input) *BatchResult {
	result := &BatchResult{
		ID:        uuid.New(),
		Items:     make([]Item, len(inputs)),
		Extension: p.serializer.Extension(),
	}
	logger := log.Ctx(ctx).With().Str("batch_id", result.ID.String()).Logger()
	logger.Info().Int("items", len(inputs)).Int("workers", p.workers).Msg("starting batch")

	var g errgroup.Group
	g.SetLimit(p.workers)

	for i, in := range inputs {
		g.Go(func() error {
			item := p.run(ctx, i, in)
			p.record(ctx, result.ID, &item)
			result.Items[i] = item

			event := logger.Info()
			if !item.OK() {
				event = logger.Warn().Str("reason", item.Reason)
			}
			event.Str("item", item.Name).
				Str("status", string(item.Status)).
				Dur("duration", item.Duration).
				Msg("batch item finished")

			if p.onProgress != nil {
				p.onProgress(ProgressEvent{
					Index:  i,
					Total:  len(inputs),
					Name:   item.Name,
					Status: item.Status,
					Reason: item.Reason,
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Info().Str("summary", result.Summary()).Msg("batch finished")
	return result
}
