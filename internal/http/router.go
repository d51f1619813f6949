package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Sadra-Dezdar/IBGPT/internal/handlers"
	"github.com/Sadra-Dezdar/IBGPT/internal/service"
	"github.com/Sadra-Dezdar/IBGPT/internal/storage"
	"github.com/Sadra-Dezdar/IBGPT/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Assistant service.Assistant
	Ledger    storage.DocumentLedger
	Store     vectorstore.DocumentStore
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Assistant)
	documentsHandler := handlers.NewDocumentsHandler(deps.Ledger)
	healthHandler := handlers.NewHealthHandler(deps.Store)

	r.Route("/api/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodGet, "/documents", documentsHandler)
	})
	r.Method(http.MethodGet, "/healthz", healthHandler)

	return r
}
