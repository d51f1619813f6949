package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Sadra-Dezdar/IBGPT/internal/collections"
	"github.com/Sadra-Dezdar/IBGPT/internal/contextutil"
	"github.com/Sadra-Dezdar/IBGPT/internal/storage"
	"github.com/Sadra-Dezdar/IBGPT/internal/vectorstore"
)

// Pipeline ingests source documents into the document store and records them
// in the ledger.
type Pipeline struct {
	store  vectorstore.DocumentStore
	ledger storage.DocumentLedger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(store vectorstore.DocumentStore, ledger storage.DocumentLedger) *Pipeline {
	return &Pipeline{
		store:  store,
		ledger: ledger,
	}
}

// Request describes one document to ingest.
type Request struct {
	Path    string // file path to read
	DocType string // determines chunking strategy and target collection
	Subject string
	Level   string
	Year    string
	Topic   string
}

// Result summarizes a completed ingestion.
type Result struct {
	Source     string
	Collection string
	Chunks     int
}

// IngestFile reads, chunks, embeds and indexes one document. Markdown files
// get a heading-aware pre-pass so chunk provenance carries the section name,
// PDFs are flattened to plain text first, and everything else is chunked as
// plain text by the doc-type strategy.
func (p *Pipeline) IngestFile(ctx context.Context, req Request) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	collection, ok := collections.ForDocType(req.DocType)
	if !ok {
		return nil, fmt.Errorf("unknown document type %q", req.DocType)
	}
	if req.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}

	source := filepath.Base(req.Path)
	chunker := ForDocType(req.DocType)

	var sections []Section
	switch strings.ToLower(filepath.Ext(req.Path)) {
	case ".md":
		content, err := os.ReadFile(req.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", req.Path, err)
		}
		sections = SplitSections(content)
	case ".pdf":
		text, err := extractPDFText(req.Path)
		if err != nil {
			return nil, err
		}
		sections = []Section{{Text: text}}
	default:
		content, err := os.ReadFile(req.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", req.Path, err)
		}
		sections = []Section{{Text: string(content)}}
	}

	var docs []vectorstore.Document
	chunkIndex := 0
	for _, section := range sections {
		if section.Text == "" {
			continue
		}
		for _, chunk := range chunker.Chunk(section.Text) {
			label := section.Heading
			if label == "" {
				// Plain-text sources have no headings; derive the section
				// from the chunk's own marker.
				label = SectionLabel(req.DocType, chunk)
			}
			attrs := ChunkAttrs{
				Source:  source,
				DocType: req.DocType,
				Subject: req.Subject,
				Level:   req.Level,
				Year:    req.Year,
				Topic:   req.Topic,
				Section: label,
			}
			docs = append(docs, vectorstore.Document{
				ID:       uuid.New().String(),
				Content:  chunk,
				Metadata: buildMetadata(attrs, chunkIndex),
			})
			chunkIndex++
		}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("document %s produced no chunks", source)
	}

	if err := p.store.Add(ctx, collection, docs); err != nil {
		return nil, fmt.Errorf("failed to index %s: %w", source, err)
	}

	record := &storage.DocumentRecord{
		Source:     source,
		DocType:    req.DocType,
		Subject:    req.Subject,
		Collection: collection,
		ChunkCount: len(docs),
	}
	if err := p.ledger.Upsert(ctx, record); err != nil {
		// The chunks are indexed; a ledger failure should not undo that.
		logger.WarnContext(ctx, "failed to record ingestion in ledger", "source", source, "error", err)
	}

	logger.InfoContext(ctx, "document ingested",
		"source", source,
		"collection", collection,
		"chunks", len(docs),
	)
	return &Result{
		Source:     source,
		Collection: collection,
		Chunks:     len(docs),
	}, nil
}

// IngestDir ingests every regular file in a directory (non-recursive) using
// the same attributes. Already-ingested sources are skipped.
func (p *Pipeline) IngestDir(ctx context.Context, dir string, req Request) ([]Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var results []Result
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if _, err := p.ledger.GetBySource(ctx, entry.Name()); err == nil {
			logger.InfoContext(ctx, "skipping already ingested document", "source", entry.Name())
			continue
		}

		fileReq := req
		fileReq.Path = filepath.Join(dir, entry.Name())
		result, err := p.IngestFile(ctx, fileReq)
		if err != nil {
			logger.WarnContext(ctx, "failed to ingest file, continuing", "path", fileReq.Path, "error", err)
			continue
		}
		results = append(results, *result)
	}

	return results, nil
}
