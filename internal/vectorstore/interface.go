// Package vectorstore provides the document store boundary: similarity search
// over named, topic-partitioned collections with equality metadata filters.
package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks github.com/Sadra-Dezdar/IBGPT/internal/vectorstore DocumentStore

import "context"

// Hit is one scored result from a collection query. Distance is the store's
// cosine distance; lower is closer. Hits come back in ascending distance order.
type Hit struct {
	ID       string
	Content  string
	Metadata map[string]any
	Distance float64
}

// Document is a chunk of content with its metadata, ready for indexing.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]any
}

// DocumentStore is the boundary to the underlying vector database.
// Implementations embed query text with the same model used at ingest time.
type DocumentStore interface {
	// Query performs a similarity search over one collection. A non-nil filter
	// restricts results to documents matching every key/value pair. Returning
	// fewer than n hits (including zero) is not an error.
	Query(ctx context.Context, collection, query string, n int, filter map[string]string) ([]Hit, error)

	// Add indexes documents into a collection.
	Add(ctx context.Context, collection string, docs []Document) error

	// EnsureCollection creates the collection with the cosine metric if it does
	// not already exist.
	EnsureCollection(ctx context.Context, collection string) error

	// CollectionExists reports whether a collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)
}

// Embedder produces embedding vectors for texts. It is satisfied by
// llm.EmbeddingsClient.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
