package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/Sadra-Dezdar/IBGPT/internal/collections"
	"github.com/Sadra-Dezdar/IBGPT/internal/config"
	"github.com/Sadra-Dezdar/IBGPT/internal/http"
	"github.com/Sadra-Dezdar/IBGPT/internal/llm"
	"github.com/Sadra-Dezdar/IBGPT/internal/retrieval"
	"github.com/Sadra-Dezdar/IBGPT/internal/service"
	"github.com/Sadra-Dezdar/IBGPT/internal/storage"
	"github.com/Sadra-Dezdar/IBGPT/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Ingest ledger initialized", "path", cfg.DBPath)

	ledger := storage.NewDocumentRepo(db)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel, cfg.VectorSize)

	store, err := vectorstore.New(vectorstore.Options{
		Backend:     cfg.StoreBackend,
		ChromemPath: cfg.ChromemPath,
		QdrantURL:   cfg.QdrantURL,
		VectorSize:  cfg.VectorSize,
	}, embedder)
	if err != nil {
		log.Fatalf("Failed to create document store: %v", err)
	}

	ctx := context.Background()
	for _, name := range collections.All() {
		if err := store.EnsureCollection(ctx, name); err != nil {
			log.Fatalf("Failed to ensure collection %s: %v", name, err)
		}
	}
	slog.Info("Document store ready", "backend", cfg.StoreBackend, "collections", len(collections.All()))

	chatClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.AnswerModel)

	retriever := retrieval.NewRetriever(store, retrieval.WithCollectionTimeout(cfg.RetrievalTimeout))

	assistant := service.NewAssistant(chatClient, retriever, service.Models{
		Classifier: cfg.ClassifierModel,
		Answer:     cfg.AnswerModel,
		Refiner:    cfg.RefinerModel,
	})
	slog.Info("Assistant pipeline initialized",
		"classifier_model", cfg.ClassifierModel,
		"answer_model", cfg.AnswerModel,
		"refiner_model", cfg.RefinerModel,
	)

	router := http.NewRouter(&http.Deps{
		Assistant: assistant,
		Ledger:    ledger,
		Store:     store,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
