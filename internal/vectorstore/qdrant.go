package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/Sadra-Dezdar/IBGPT/internal/contextutil"
)

// contentPayloadKey is the payload field holding chunk text. Everything else in
// the payload is treated as document metadata.
const contentPayloadKey = "content"

// QdrantStore implements DocumentStore using Qdrant.
type QdrantStore struct {
	client     *qdrant.Client
	embedder   Embedder
	vectorSize int
}

// NewQdrantStore creates a new Qdrant-backed document store.
// urlStr should be in the format "http://host:port" (e.g. "http://localhost:6333");
// the gRPC port is derived from the HTTP port.
func NewQdrantStore(urlStr string, embedder Embedder, vectorSize int) (*QdrantStore, error) {
	host, port, err := grpcTarget(urlStr)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{
		client:     client,
		embedder:   embedder,
		vectorSize: vectorSize,
	}, nil
}

// grpcTarget derives the gRPC host and port from the HTTP URL. The gRPC port
// is typically the HTTP port + 1.
func grpcTarget(urlStr string) (string, int, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334 // Default gRPC port
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			port = httpPort + 1
		}
	}

	return host, port, nil
}

// Query embeds the query text and performs a filtered similarity search.
// Qdrant reports cosine similarity; it is converted to distance as 1 - score so
// every backend speaks the same distance convention.
func (s *QdrantStore) Query(ctx context.Context, collection, query string, n int, filter map[string]string) ([]Hit, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if n <= 0 {
		return nil, fmt.Errorf("result cap must be greater than 0")
	}

	embeddings, err := s.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	// Equality conditions combine under Must, giving conjunction semantics.
	var qdrantFilter *qdrant.Filter
	if len(filter) > 0 {
		must := make([]*qdrant.Condition, 0, len(filter))
		for key, value := range filter {
			must = append(must, qdrant.NewMatch(key, value))
		}
		qdrantFilter = &qdrant.Filter{Must: must}
	}

	limit := uint64(n)
	queryReq := &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(embeddings[0]...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if qdrantFilter != nil {
		queryReq.Filter = qdrantFilter
	}

	scoredPoints, err := s.client.Query(ctx, queryReq)
	if err != nil {
		logger.ErrorContext(ctx, "qdrant query failed", "collection", collection, "n", n, "error", err)
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}

	hits := make([]Hit, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		id := ""
		if point.Id != nil {
			id = point.Id.GetUuid()
		}

		content := ""
		meta := make(map[string]any)
		if point.Payload != nil {
			for k, v := range point.Payload {
				if v == nil {
					continue
				}
				if k == contentPayloadKey {
					if str, ok := convertValue(v).(string); ok {
						content = str
					}
					continue
				}
				meta[k] = convertValue(v)
			}
		}

		hits = append(hits, Hit{
			ID:       id,
			Content:  content,
			Metadata: meta,
			Distance: 1 - float64(point.Score),
		})
	}

	logger.DebugContext(ctx, "qdrant query completed", "collection", collection, "n", n, "hits", len(hits))
	return hits, nil
}

// Add embeds and upserts documents. Documents without IDs get fresh UUIDs so
// point IDs satisfy Qdrant's ID format.
func (s *QdrantStore) Add(ctx context.Context, collection string, docs []Document) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}
	embeddings, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(embeddings) != len(docs) {
		return fmt.Errorf("expected %d embeddings, got %d", len(docs), len(embeddings))
	}

	points := make([]*qdrant.PointStruct, 0, len(docs))
	for i, doc := range docs {
		id := doc.ID
		if id == "" {
			id = uuid.New().String()
		}

		payload := make(map[string]any, len(doc.Metadata)+1)
		for k, v := range doc.Metadata {
			payload[k] = v
		}
		payload[contentPayloadKey] = doc.Content

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(id),
			Vectors: qdrant.NewVectors(embeddings[i]...),
			Payload: qdrant.NewValueMap(payload),
		})
	}

	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert points", "collection", collection, "count", len(points), "error", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	logger.InfoContext(ctx, "indexed documents", "collection", collection, "count", len(points))
	return nil
}

// EnsureCollection creates the collection with the cosine metric if missing.
func (s *QdrantStore) EnsureCollection(ctx context.Context, collection string) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	logger.InfoContext(ctx, "creating collection", "collection", collection, "vector_size", s.vectorSize)
	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(s.vectorSize),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", collection, err)
	}
	return nil
}

// CollectionExists reports whether a collection exists.
func (s *QdrantStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return false, fmt.Errorf("failed to check collection existence: %w", err)
	}
	return exists, nil
}

// convertValue converts a Qdrant Value to a Go any type.
func convertValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_ListValue:
		list := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			list[i] = convertValue(item)
		}
		return list
	case *qdrant.Value_StructValue:
		nested := make(map[string]any, len(val.StructValue.Fields))
		for k, item := range val.StructValue.Fields {
			if item != nil {
				nested[k] = convertValue(item)
			}
		}
		return nested
	default:
		return nil
	}
}
