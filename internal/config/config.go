package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// LLM settings. One OpenAI-compatible server (e.g. Ollama) serves all three
	// agent roles; the models differ per role.
	LLMBaseURL      string
	LLMAPIKey       string
	ClassifierModel string
	AnswerModel     string
	RefinerModel    string

	// Embedding settings. The embedding model must match at ingest and query time.
	EmbeddingBaseURL string
	EmbeddingModel   string
	VectorSize       int

	// Document store settings.
	StoreBackend string // "chromem" or "qdrant"
	ChromemPath  string
	QdrantURL    string

	// RetrievalTimeout is the per-collection query budget.
	RetrievalTimeout time.Duration

	DBPath  string
	APIPort string

	LogLevel  slog.Level
	LogFormat string // "text" or "json"
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or project root, it is loaded
// automatically; environment variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a project-root .env (next to go.mod on dev machines).
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:       getEnv("LLM_BASE_URL", "http://localhost:11434"),
		LLMAPIKey:        getEnv("LLM_API_KEY", "ollama"),
		ClassifierModel:  getEnv("CLASSIFIER_MODEL", "qwen3:latest"),
		AnswerModel:      getEnv("ANSWER_MODEL", "llama3.2:latest"),
		RefinerModel:     getEnv("REFINER_MODEL", "llama3.2:latest"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", getEnv("LLM_BASE_URL", "http://localhost:11434")),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "all-minilm:latest"),
		StoreBackend:     strings.ToLower(getEnv("STORE_BACKEND", "chromem")),
		ChromemPath:      getEnv("CHROMEM_PATH", "./data/chroma"),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		DBPath:           getEnv("DB_PATH", "./data/ibgpt.db"),
		APIPort:          getEnv("API_PORT", "9000"),
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	// Parse VECTOR_SIZE. This must match the output dimension of the embedding
	// model; if it changes, every collection must be re-ingested.
	vectorSizeStr := getEnv("VECTOR_SIZE", "384")
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("VECTOR_SIZE must be greater than 0")
	}
	cfg.VectorSize = vectorSize

	switch cfg.StoreBackend {
	case "chromem", "qdrant":
	default:
		return nil, fmt.Errorf("STORE_BACKEND must be \"chromem\" or \"qdrant\", got %q", cfg.StoreBackend)
	}

	timeoutStr := getEnv("RETRIEVAL_TIMEOUT", "5s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("RETRIEVAL_TIMEOUT must be a valid duration: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("RETRIEVAL_TIMEOUT must be positive")
	}
	cfg.RetrievalTimeout = timeout

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	// Create the data directory for the SQLite ledger and chromem files.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
