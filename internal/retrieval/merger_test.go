package retrieval

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Sadra-Dezdar/IBGPT/internal/vectorstore"
)

func TestSearchAllMergesByRelevance(t *testing.T) {
	store := newFakeStore()
	store.hits["ia_guides"] = []vectorstore.Hit{
		{ID: "g1", Content: "guide", Distance: 0.1},
		{ID: "g2", Content: "guide2", Distance: 0.3},
	}
	store.hits["ia_examples"] = []vectorstore.Hit{
		{ID: "e1", Content: "example", Distance: 0.2},
	}

	r := NewRetriever(store)
	docs, err := r.SearchAll(context.Background(), []string{"ia_guides", "ia_examples"}, "q", nil, 3, 5)
	if err != nil {
		t.Fatalf("SearchAll() error = %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("SearchAll() returned %d docs, want 3", len(docs))
	}

	wantOrder := []float64{0.9, 0.8, 0.7}
	for i, want := range wantOrder {
		if math.Abs(docs[i].Relevance-want) > 1e-9 {
			t.Errorf("docs[%d].Relevance = %v, want %v", i, docs[i].Relevance, want)
		}
	}
}

func TestSearchAllOrderIndependent(t *testing.T) {
	store := newFakeStore()
	store.hits["a"] = []vectorstore.Hit{
		{ID: "a1", Content: "a1", Distance: 0.4},
		{ID: "a2", Content: "a2", Distance: 0.1},
	}
	store.hits["b"] = []vectorstore.Hit{
		{ID: "b1", Content: "b1", Distance: 0.2},
	}

	r := NewRetriever(store)
	forward, err := r.SearchAll(context.Background(), []string{"a", "b"}, "q", nil, 3, 5)
	if err != nil {
		t.Fatalf("SearchAll() error = %v", err)
	}
	reversed, err := r.SearchAll(context.Background(), []string{"b", "a"}, "q", nil, 3, 5)
	if err != nil {
		t.Fatalf("SearchAll() error = %v", err)
	}

	if len(forward) != len(reversed) {
		t.Fatalf("result lengths differ: %d vs %d", len(forward), len(reversed))
	}
	for i := range forward {
		if forward[i].Content != reversed[i].Content {
			t.Errorf("position %d differs: %q vs %q", i, forward[i].Content, reversed[i].Content)
		}
	}
}

func TestSearchAllTruncatesToTopK(t *testing.T) {
	store := newFakeStore()
	store.hits["a"] = []vectorstore.Hit{
		{ID: "a1", Distance: 0.1},
		{ID: "a2", Distance: 0.2},
		{ID: "a3", Distance: 0.3},
	}
	store.hits["b"] = []vectorstore.Hit{
		{ID: "b1", Distance: 0.15},
		{ID: "b2", Distance: 0.25},
		{ID: "b3", Distance: 0.35},
	}

	r := NewRetriever(store)
	docs, err := r.SearchAll(context.Background(), []string{"a", "b"}, "q", nil, 3, 5)
	if err != nil {
		t.Fatalf("SearchAll() error = %v", err)
	}
	if len(docs) != 5 {
		t.Fatalf("SearchAll() returned %d docs, want 5", len(docs))
	}
	for i := 1; i < len(docs); i++ {
		if docs[i].Relevance > docs[i-1].Relevance {
			t.Errorf("docs not sorted by descending relevance at %d: %v > %v", i, docs[i].Relevance, docs[i-1].Relevance)
		}
	}
}

func TestSearchAllSkipsFailedCollection(t *testing.T) {
	store := newFakeStore()
	store.hits["healthy"] = []vectorstore.Hit{
		{ID: "h1", Content: "ok", Distance: 0.2},
	}
	store.errs["broken"] = errors.New("connection refused")

	r := NewRetriever(store)
	docs, err := r.SearchAll(context.Background(), []string{"broken", "healthy"}, "q", nil, 3, 5)
	if err != nil {
		t.Fatalf("SearchAll() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Content != "ok" {
		t.Errorf("SearchAll() = %+v, want the single healthy result", docs)
	}
}

func TestSearchAllAllCollectionsFail(t *testing.T) {
	store := newFakeStore()
	store.errs["a"] = errors.New("down")
	store.errs["b"] = errors.New("down")

	r := NewRetriever(store)
	docs, err := r.SearchAll(context.Background(), []string{"a", "b"}, "q", nil, 3, 5)
	if err != nil {
		t.Fatalf("SearchAll() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("SearchAll() = %d docs, want 0", len(docs))
	}
}

func TestSearchAllCancelled(t *testing.T) {
	store := newFakeStore()
	store.hits["a"] = []vectorstore.Hit{{ID: "a1", Distance: 0.1}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRetriever(store)
	_, err := r.SearchAll(ctx, []string{"a"}, "q", nil, 3, 5)
	if err == nil {
		t.Fatal("SearchAll() expected error for cancelled context, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestSearchAllEmptyCollections(t *testing.T) {
	r := NewRetriever(newFakeStore())
	docs, err := r.SearchAll(context.Background(), nil, "q", nil, 3, 5)
	if err != nil {
		t.Fatalf("SearchAll() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("SearchAll() = %d docs, want 0", len(docs))
	}
}

func TestSearchAllDefaultTopK(t *testing.T) {
	store := newFakeStore()
	hits := make([]vectorstore.Hit, 0, 8)
	for i := 0; i < 8; i++ {
		hits = append(hits, vectorstore.Hit{Distance: float64(i) / 10})
	}
	store.hits["a"] = hits

	r := NewRetriever(store)
	docs, err := r.SearchAll(context.Background(), []string{"a"}, "q", nil, 8, 0)
	if err != nil {
		t.Fatalf("SearchAll() error = %v", err)
	}
	if len(docs) != DefaultTopK {
		t.Errorf("SearchAll() with topK=0 returned %d docs, want %d", len(docs), DefaultTopK)
	}
}
