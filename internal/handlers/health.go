package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Sadra-Dezdar/IBGPT/internal/collections"
	"github.com/Sadra-Dezdar/IBGPT/internal/contextutil"
	"github.com/Sadra-Dezdar/IBGPT/internal/vectorstore"
)

// HealthHandler reports whether the document store and its collections are
// reachable.
type HealthHandler struct {
	store              vectorstore.DocumentStore
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store vectorstore.DocumentStore) *HealthHandler {
	return &HealthHandler{
		store:              store,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	Timestamp string `json:"timestamp"`

	// Per-collection check results
	Checks map[string]string `json:"checks"`

	// Issues is only present when unhealthy
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles GET /healthz. Returns 200 when every registry collection
// exists, 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	for _, name := range collections.All() {
		exists, err := h.store.CollectionExists(checkCtx, name)
		switch {
		case err != nil:
			logger.WarnContext(ctx, "collection health check failed", "collection", name, "error", err)
			checks[name] = "error"
			issues = append(issues, "store_unavailable")
		case !exists:
			checks[name] = "missing"
			issues = append(issues, "collection_missing: "+name)
		default:
			checks[name] = "ok"
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}
