package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/Sadra-Dezdar/IBGPT/internal/collections"
	"github.com/Sadra-Dezdar/IBGPT/internal/config"
	"github.com/Sadra-Dezdar/IBGPT/internal/ingest"
	"github.com/Sadra-Dezdar/IBGPT/internal/llm"
	"github.com/Sadra-Dezdar/IBGPT/internal/storage"
	"github.com/Sadra-Dezdar/IBGPT/internal/vectorstore"
)

func main() {
	var (
		file    = flag.String("file", "", "path to a single document to ingest")
		dir     = flag.String("dir", "", "directory of documents to ingest")
		docType = flag.String("doc-type", "", "document type (ia_guide, ia_example, mark_scheme, syllabus, general_info)")
		subject = flag.String("subject", "", "subject the document belongs to")
		level   = flag.String("level", "", "course level (HL, SL)")
		year    = flag.String("year", "", "exam session year")
		topic   = flag.String("topic", "", "topic or unit label")
	)
	flag.Parse()

	if (*file == "") == (*dir == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -file or -dir is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))

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
	if name, ok := collections.ForDocType(*docType); ok {
		if err := store.EnsureCollection(ctx, name); err != nil {
			log.Fatalf("Failed to ensure collection %s: %v", name, err)
		}
	}

	pipeline := ingest.NewPipeline(store, ledger)

	if *file != "" {
		res, err := pipeline.IngestFile(ctx, ingest.Request{
			Path:    *file,
			DocType: *docType,
			Subject: *subject,
			Level:   *level,
			Year:    *year,
			Topic:   *topic,
		})
		if err != nil {
			log.Fatalf("Ingest failed: %v", err)
		}
		fmt.Printf("Ingested %s into %s (%d chunks)\n", res.Source, res.Collection, res.Chunks)
		return
	}

	results, err := pipeline.IngestDir(ctx, *dir, ingest.Request{
		DocType: *docType,
		Subject: *subject,
		Level:   *level,
		Year:    *year,
		Topic:   *topic,
	})
	if err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}
	total := 0
	for _, res := range results {
		fmt.Printf("Ingested %s into %s (%d chunks)\n", res.Source, res.Collection, res.Chunks)
		total += res.Chunks
	}
	fmt.Printf("Done: %d files, %d chunks\n", len(results), total)
}
