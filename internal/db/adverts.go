package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/advert-generator/internal/pipeline"
)

// RecordItem stores a pipeline item. It satisfies pipeline.Recorder.
func (db *DB) RecordItem(ctx context.Context, batchID uuid.UUID, item *pipeline.Item) error {
	return db.SaveAdvert(ctx, advertFromItem(batchID, item))
}

// SaveAdvert inserts an advert row, replacing any row with the same ID.
func (db *DB) SaveAdvert(ctx context.Context, a *Advert) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO adverts (id, batch_id, source_name, status, reason, advert_text, document, file_name, content_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET status = $4, reason = $5, advert_text = $6,
		     document = $7, file_name = $8, content_type = $9`,
		a.ID, a.BatchID, a.SourceName, a.Status, a.Reason, a.AdvertText, a.Document, a.FileName, a.ContentType,
	)
	if err != nil {
		return fmt.Errorf("failed to save advert %s: %w", a.ID, err)
	}
	return nil
}

// advertFromItem maps a pipeline item to a history row. A nil batch ID marks
// a single conversion.
func advertFromItem(batchID uuid.UUID, item *pipeline.Item) *Advert {
	a := &Advert{
		ID:         item.ID,
		SourceName: item.Name,
		Status:     string(item.Status),
		Reason:     item.Reason,
	}
	if batchID != uuid.Nil {
		id := batchID
		a.BatchID = &id
	}
	if out := item.Output; out != nil {
		a.AdvertText = out.AdvertText
		a.Document = out.Bytes
		a.FileName = out.FileName
		a.ContentType = out.ContentType
	}
	return a
}

// GetAdvert retrieves an advert with its document by ID. It returns nil and no
// error when the advert does not exist.
func (db *DB) GetAdvert(ctx context.Context, id uuid.UUID) (*Advert, error) {
	var a Advert
	err := db.pool.QueryRow(ctx,
		`SELECT id, batch_id, source_name, status, reason, advert_text, document,
		        file_name, content_type, created_at
		 FROM adverts WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.BatchID, &a.SourceName, &a.Status, &a.Reason, &a.AdvertText,
		&a.Document, &a.FileName, &a.ContentType, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get advert: %w", err)
	}
	return &a, nil
}

// ListAdverts retrieves recent adverts without their documents.
func (db *DB) ListAdverts(ctx context.Context, filters AdvertFilters) ([]Advert, error) {
	if filters.Limit <= 0 {
		filters.Limit = DefaultListLimit
	}

	query := `SELECT id, batch_id, source_name, status, reason, advert_text,
		      file_name, content_type, created_at
		FROM adverts WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.BatchID != uuid.Nil {
		query += fmt.Sprintf(" AND batch_id = $%d", argNum)
		args = append(args, filters.BatchID)
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list adverts: %w", err)
	}
	defer rows.Close()

	adverts := []Advert{}
	for rows.Next() {
		var a Advert
		if err := rows.Scan(&a.ID, &a.BatchID, &a.SourceName, &a.Status, &a.Reason,
			&a.AdvertText, &a.FileName, &a.ContentType, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan advert: %w", err)
		}
		adverts = append(adverts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list adverts: %w", err)
	}
	return adverts, nil
}
