package config

import (
	"log"
	"os"
	"strconv"
)

type LLMBackend string

const (
	LLMOpenAI LLMBackend = "openai"
	LLMVertex LLMBackend = "vertex"
	LLMMock   LLMBackend = "mock"
)

type Config struct {
	Port string

	// MongoDB / document index
	MongoURI        string
	MongoDatabase   string
	ChunkCollection string
	VectorIndexName string

	// LLM + embeddings
	LLMBackend     LLMBackend
	OpenAIAPIKey   string
	OpenAIModel    string
	EmbeddingModel string
	GCPProjectID   string
	GCPLocation    string
	VertexModel    string

	// Pipeline knobs
	TopK           int
	MaxChatTokens  int
	StorageBackend string // "memory" or "mongo"

	JWTSecret string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load reads all env vars and builds the config.
func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		MongoURI:        getEnv("MONGODB_URI", ""),
		MongoDatabase:   getEnv("MONGODB_DATABASE", "vector_db"),
		ChunkCollection: getEnv("COLLECTION_NAME", "pdf_documents"),
		VectorIndexName: getEnv("VECTOR_INDEX_NAME", "vectorSearchIndex"),

		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		GCPProjectID:   getEnv("ASTRO_GCP_PROJECT", ""),
		GCPLocation:    getEnv("ASTRO_GCP_LOCATION", "us-central1"),
		VertexModel:    getEnv("ASTRO_VERTEX_MODEL", "gemini-2.5-flash"),

		TopK:           getIntEnv("ASTRO_TOP_K", 5),
		MaxChatTokens:  getIntEnv("ASTRO_MAX_TOKENS", 600),
		StorageBackend: getEnv("ASTRO_STORAGE_BACKEND", "memory"),

		JWTSecret: getEnv("JWT_SECRET", ""),
	}

	backend := getEnv("ASTRO_LLM_BACKEND", string(LLMOpenAI))
	switch LLMBackend(backend) {
	case LLMOpenAI, LLMVertex, LLMMock:
		cfg.LLMBackend = LLMBackend(backend)
	default:
		log.Printf("unknown ASTRO_LLM_BACKEND %q, using openai", backend)
		cfg.LLMBackend = LLMOpenAI
	}

	// No API key means the live model can never be reached; run canned-only
	// instead of failing every request.
	if getBoolEnv("ASTRO_USE_MOCK_LLM", false) {
		cfg.LLMBackend = LLMMock
	}
	if cfg.LLMBackend == LLMOpenAI && cfg.OpenAIAPIKey == "" {
		log.Println("OPENAI_API_KEY not set, falling back to mock LLM backend")
		cfg.LLMBackend = LLMMock
	}

	if cfg.StorageBackend == "mongo" && cfg.MongoURI == "" {
		log.Fatal("MONGODB_URI must be set for the mongo storage backend")
	}

	return cfg
}
