package retrieval

import (
	"context"
	"time"

	"github.com/Sadra-Dezdar/IBGPT/internal/contextutil"
	"github.com/Sadra-Dezdar/IBGPT/internal/vectorstore"
)

const (
	// defaultPerCollection is the result cap per collection when the caller
	// passes none.
	defaultPerCollection = 3
	// DefaultTopK is the global cap on merged results.
	DefaultTopK = 5
	// defaultCollectionTimeout bounds a single collection query.
	defaultCollectionTimeout = 5 * time.Second
	// maxConcurrentQueries bounds the merge fan-out.
	maxConcurrentQueries = 4
)

// Retriever performs similarity searches against the document store.
// It is safe for concurrent use; the store handle is read-only after setup.
type Retriever struct {
	store             vectorstore.DocumentStore
	collectionTimeout time.Duration
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithCollectionTimeout sets the per-collection query budget used by the
// merger. A timed-out collection is treated like any other failed one.
func WithCollectionTimeout(d time.Duration) Option {
	return func(r *Retriever) {
		if d > 0 {
			r.collectionTimeout = d
		}
	}
}

// NewRetriever creates a Retriever over the given store.
func NewRetriever(store vectorstore.DocumentStore, opts ...Option) *Retriever {
	r := &Retriever{
		store:             store,
		collectionTimeout: defaultCollectionTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search queries one collection and returns up to n scored documents in the
// store's native order (ascending distance). A nil or empty filter matches all
// documents. Failures are wrapped in a *RetrievalError carrying the collection
// name; an empty result list is not a failure.
func (r *Retriever) Search(ctx context.Context, collection, query string, filter MetadataFilter, n int) ([]ScoredDocument, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if n <= 0 {
		n = defaultPerCollection
	}

	hits, err := r.store.Query(ctx, collection, query, n, map[string]string(filter))
	if err != nil {
		return nil, &RetrievalError{Collection: collection, Err: err}
	}

	docs := make([]ScoredDocument, 0, len(hits))
	for _, hit := range hits {
		docs = append(docs, ScoredDocument{
			Content:   hit.Content,
			Metadata:  hit.Metadata,
			Distance:  hit.Distance,
			Relevance: 1 - hit.Distance,
		})
	}

	logger.DebugContext(ctx, "collection searched",
		"collection", collection,
		"filter_size", len(filter),
		"n", n,
		"results", len(docs),
	)
	return docs, nil
}
