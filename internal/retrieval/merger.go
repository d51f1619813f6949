package retrieval

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Sadra-Dezdar/IBGPT/internal/contextutil"
)

// SearchAll fans the retriever out across the given collections concurrently,
// merges the results by descending relevance, and truncates to topK.
//
// Each collection query runs under its own timeout; a failed or timed-out
// collection is logged and contributes zero documents, so the merge only
// errors when the parent context is cancelled. Collection order carries no
// ranking weight; the sort is stable, so it only breaks ties between
// exactly-equal relevance scores, keeping output deterministic for identical
// inputs. An empty merged result is returned as an empty slice, not an error.
func (r *Retriever) SearchAll(ctx context.Context, collections []string, query string, filter MetadataFilter, perCollection, topK int) ([]ScoredDocument, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if topK <= 0 {
		topK = DefaultTopK
	}

	// Per-collection result slots; no shared mutable state between workers.
	results := make([][]ScoredDocument, len(collections))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQueries)

	for i, collection := range collections {
		g.Go(func() error {
			queryCtx, cancel := context.WithTimeout(gctx, r.collectionTimeout)
			defer cancel()

			docs, err := r.Search(queryCtx, collection, query, filter, perCollection)
			if err != nil {
				// A cancelled pipeline produces no answer, not a partial one.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.WarnContext(ctx, "collection query failed, continuing without it",
					"collection", collection, "error", err)
				return nil
			}
			results[i] = docs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]ScoredDocument, 0, len(collections)*perCollection)
	for _, docs := range results {
		merged = append(merged, docs...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Relevance > merged[j].Relevance
	})

	if len(merged) > topK {
		merged = merged[:topK]
	}

	logger.InfoContext(ctx, "cross-collection search completed",
		"collections", len(collections),
		"results", len(merged),
	)
	return merged, nil
}
