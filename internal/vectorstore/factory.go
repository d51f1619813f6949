package vectorstore

import "fmt"

// Options selects and configures a document store backend.
type Options struct {
	Backend     string // "chromem" or "qdrant"
	ChromemPath string
	QdrantURL   string
	VectorSize  int
}

// New creates a DocumentStore for the configured backend.
func New(opts Options, embedder Embedder) (DocumentStore, error) {
	switch opts.Backend {
	case "chromem":
		return NewChromemStore(opts.ChromemPath, embedder)
	case "qdrant":
		return NewQdrantStore(opts.QdrantURL, embedder, opts.VectorSize)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
