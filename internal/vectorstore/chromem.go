package vectorstore

import (
	"context"
	"fmt"
	"os"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/Sadra-Dezdar/IBGPT/internal/contextutil"
)

// addConcurrency bounds parallel embedding calls during indexing.
const addConcurrency = 4

// ChromemStore implements DocumentStore using chromem-go, an embeddable pure-Go
// vector database with gob-file persistence. It needs no external service,
// which makes it the default backend for local setups.
type ChromemStore struct {
	db       *chromem.DB
	embedder Embedder
}

// NewChromemStore opens (or creates) a persistent chromem database at path.
func NewChromemStore(path string, embedder Embedder) (*ChromemStore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", path, err)
	}

	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open chromem DB: %w", err)
	}

	return &ChromemStore{
		db:       db,
		embedder: embedder,
	}, nil
}

// embeddingFunc adapts the Embedder to chromem's per-text signature.
func (s *ChromemStore) embeddingFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vectors, err := s.embedder.EmbedTexts(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vectors) == 0 {
			return nil, fmt.Errorf("no embedding returned")
		}
		return vectors[0], nil
	}
}

// Query performs a filtered similarity search. chromem reports cosine
// similarity; it is converted to distance as 1 - similarity.
func (s *ChromemStore) Query(ctx context.Context, collection, query string, n int, filter map[string]string) ([]Hit, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if n <= 0 {
		return nil, fmt.Errorf("result cap must be greater than 0")
	}

	col := s.db.GetCollection(collection, s.embeddingFunc())
	if col == nil {
		return nil, fmt.Errorf("collection %s does not exist", collection)
	}

	// chromem requires nResults <= document count.
	count := col.Count()
	if count == 0 {
		return []Hit{}, nil
	}
	if n > count {
		n = count
	}

	var where map[string]string
	if len(filter) > 0 {
		where = filter
	}

	results, err := col.Query(ctx, query, n, where, nil)
	if err != nil {
		logger.ErrorContext(ctx, "chromem query failed", "collection", collection, "n", n, "error", err)
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, Hit{
			ID:       r.ID,
			Content:  r.Content,
			Metadata: metadataFromStrings(r.Metadata),
			Distance: 1 - float64(r.Similarity),
		})
	}

	logger.DebugContext(ctx, "chromem query completed", "collection", collection, "n", n, "hits", len(hits))
	return hits, nil
}

// Add indexes documents into a collection, creating it on first use.
func (s *ChromemStore) Add(ctx context.Context, collection string, docs []Document) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(docs) == 0 {
		return nil
	}

	col, err := s.db.GetOrCreateCollection(collection, nil, s.embeddingFunc())
	if err != nil {
		return fmt.Errorf("failed to open collection %s: %w", collection, err)
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromemDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: metadataToStrings(doc.Metadata),
		}
	}

	if err := col.AddDocuments(ctx, chromemDocs, addConcurrency); err != nil {
		logger.ErrorContext(ctx, "failed to add documents", "collection", collection, "count", len(docs), "error", err)
		return fmt.Errorf("failed to add documents to %s: %w", collection, err)
	}

	logger.InfoContext(ctx, "indexed documents", "collection", collection, "count", len(docs))
	return nil
}

// EnsureCollection creates the collection if it does not already exist.
func (s *ChromemStore) EnsureCollection(ctx context.Context, collection string) error {
	if _, err := s.db.GetOrCreateCollection(collection, nil, s.embeddingFunc()); err != nil {
		return fmt.Errorf("failed to ensure collection %s: %w", collection, err)
	}
	return nil
}

// CollectionExists reports whether a collection exists.
func (s *ChromemStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	return s.db.GetCollection(collection, s.embeddingFunc()) != nil, nil
}

// metadataToStrings converts metadata for chromem, which stores string values.
func metadataToStrings(meta map[string]any) map[string]string {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		switch val := v.(type) {
		case string:
			out[k] = val
		case int:
			out[k] = strconv.Itoa(val)
		case int64:
			out[k] = strconv.FormatInt(val, 10)
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			out[k] = fmt.Sprintf("%v", val)
		}
	}
	return out
}

func metadataFromStrings(meta map[string]string) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
