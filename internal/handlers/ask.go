package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sadra-Dezdar/IBGPT/internal/contextutil"
	"github.com/Sadra-Dezdar/IBGPT/internal/service"
)

// AskHandler handles HTTP requests for student questions.
type AskHandler struct {
	assistant service.Assistant
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(assistant service.Assistant) *AskHandler {
	return &AskHandler{assistant: assistant}
}

// AskRequest is the HTTP request payload. It mirrors service.AskRequest but is
// defined here for HTTP layer separation.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the HTTP response payload.
type AskResponse struct {
	Answer     string              `json:"answer"`
	QueryType  string              `json:"query_type"`
	Subject    string              `json:"subject,omitempty"`
	Level      string              `json:"level,omitempty"`
	References []service.Reference `json:"references"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles POST /api/v1/ask.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	resp, err := h.assistant.Ask(ctx, service.AskRequest{Question: req.Question})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	references := resp.References
	if references == nil {
		references = []service.Reference{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(AskResponse{
		Answer:     resp.Answer,
		QueryType:  resp.QueryType,
		Subject:    resp.Subject,
		Level:      resp.Level,
		References: references,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleServiceError maps pipeline errors onto HTTP statuses. Retrieval-stage
// failures never arrive here; the service degrades to the no-context path.
func (h *AskHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "ask pipeline error", "error", err)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrExternalService):
		writeError(w, http.StatusBadGateway, "External service error")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away; nothing useful to write.
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
	default:
		writeError(w, http.StatusInternalServerError, "Failed to process question")
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
