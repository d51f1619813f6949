package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Sadra-Dezdar/IBGPT/internal/contextutil"
	"github.com/Sadra-Dezdar/IBGPT/internal/storage"
)

// DocumentsHandler lists the ingest ledger.
type DocumentsHandler struct {
	ledger storage.DocumentLedger
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(ledger storage.DocumentLedger) *DocumentsHandler {
	return &DocumentsHandler{ledger: ledger}
}

// DocumentResponse is one ingested document in the listing.
type DocumentResponse struct {
	Source     string `json:"source"`
	DocType    string `json:"doc_type"`
	Subject    string `json:"subject"`
	Collection string `json:"collection"`
	ChunkCount int    `json:"chunk_count"`
	IngestedAt string `json:"ingested_at"`
}

// DocumentsResponse is the full listing.
type DocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ServeHTTP handles GET /api/v1/documents.
func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	records, err := h.ledger.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	docs := make([]DocumentResponse, 0, len(records))
	for _, rec := range records {
		docs = append(docs, DocumentResponse{
			Source:     rec.Source,
			DocType:    rec.DocType,
			Subject:    rec.Subject,
			Collection: rec.Collection,
			ChunkCount: rec.ChunkCount,
			IngestedAt: rec.IngestedAt.UTC().Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(DocumentsResponse{Documents: docs}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
