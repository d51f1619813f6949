package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_ledger.go -package=mocks github.com/Sadra-Dezdar/IBGPT/internal/storage DocumentLedger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// DocumentRecord describes one ingested source document.
type DocumentRecord struct {
	ID         string // UUID
	Source     string // source filename as provided at ingest time
	DocType    string
	Subject    string
	Collection string
	ChunkCount int
	IngestedAt time.Time
}

// DocumentLedger defines the interface for ingest ledger operations.
type DocumentLedger interface {
	// GetBySource gets a record by its source filename.
	// Returns nil and ErrNotFound if not found.
	GetBySource(ctx context.Context, source string) (*DocumentRecord, error)
	// Upsert inserts a new record or updates an existing one by source.
	Upsert(ctx context.Context, rec *DocumentRecord) error
	// ListAll returns all records ordered by ingest time, newest first.
	ListAll(ctx context.Context) ([]DocumentRecord, error)
}

// DocumentRepo implements DocumentLedger over SQLite.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetBySource gets a record by its source filename.
func (r *DocumentRepo) GetBySource(ctx context.Context, source string) (*DocumentRecord, error) {
	var rec DocumentRecord
	var ingestedAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, source, doc_type, subject, collection, chunk_count, ingested_at FROM documents WHERE source = ?",
		source,
	).Scan(&rec.ID, &rec.Source, &rec.DocType, &rec.Subject, &rec.Collection, &rec.ChunkCount, &ingestedAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	rec.IngestedAt, err = parseTimestamp(ingestedAtStr)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// Upsert inserts a new record or updates an existing one by source, preserving
// the ID of an existing record.
func (r *DocumentRepo) Upsert(ctx context.Context, rec *DocumentRecord) error {
	existing, err := r.GetBySource(ctx, rec.Source)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing != nil {
		rec.ID = existing.ID
	} else if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, source, doc_type, subject, collection, chunk_count, ingested_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (source) DO UPDATE SET
		 doc_type = excluded.doc_type, subject = excluded.subject,
		 collection = excluded.collection, chunk_count = excluded.chunk_count,
		 ingested_at = CURRENT_TIMESTAMP`,
		rec.ID, rec.Source, rec.DocType, rec.Subject, rec.Collection, rec.ChunkCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	return nil
}

// ListAll returns all ledger records, newest first.
func (r *DocumentRepo) ListAll(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, source, doc_type, subject, collection, chunk_count, ingested_at FROM documents ORDER BY ingested_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		var ingestedAtStr string
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.DocType, &rec.Subject, &rec.Collection, &rec.ChunkCount, &ingestedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		rec.IngestedAt, err = parseTimestamp(ingestedAtStr)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return records, nil
}

// parseTimestamp handles the DATETIME formats SQLite emits.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
