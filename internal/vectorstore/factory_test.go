package vectorstore

import (
	"path/filepath"
	"testing"
)

func TestNewChromemBackend(t *testing.T) {
	store, err := New(Options{
		Backend:     "chromem",
		ChromemPath: filepath.Join(t.TempDir(), "chroma"),
	}, &stubEmbedder{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := store.(*ChromemStore); !ok {
		t.Errorf("store type = %T, want *ChromemStore", store)
	}
}

func TestNewQdrantBackend(t *testing.T) {
	store, err := New(Options{
		Backend:    "qdrant",
		QdrantURL:  "http://localhost:6333",
		VectorSize: 384,
	}, &stubEmbedder{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := store.(*QdrantStore); !ok {
		t.Errorf("store type = %T, want *QdrantStore", store)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New(Options{Backend: "pinecone"}, &stubEmbedder{}); err == nil {
		t.Error("New() with unknown backend expected error")
	}
}
