package db

import (
	"time"

	"github.com/google/uuid"
)

// Advert statuses mirror the pipeline item statuses.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Advert is one row of the advert history.
type Advert struct {
	ID          uuid.UUID  `json:"id"`
	BatchID     *uuid.UUID `json:"batch_id,omitempty"`
	SourceName  string     `json:"source_name"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	AdvertText  string     `json:"advert_text,omitempty"`
	Document    []byte     `json:"-"`
	FileName    string     `json:"file_name,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// HasDocument reports whether the row stores a downloadable document.
func (a *Advert) HasDocument() bool {
	return len(a.Document) > 0
}

// AdvertFilters holds optional filters for listing adverts
type AdvertFilters struct {
	BatchID uuid.UUID
	Status  string
	Limit   int
	Offset  int
}

// DefaultListLimit caps ListAdverts when no limit is given.
const DefaultListLimit = 50
