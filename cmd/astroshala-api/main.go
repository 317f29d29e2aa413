package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aniketsingh1023/Astroshala/internal/adapters/embedding"
	httpadapter "github.com/aniketsingh1023/Astroshala/internal/adapters/http"
	"github.com/aniketsingh1023/Astroshala/internal/adapters/llm"
	memstorage "github.com/aniketsingh1023/Astroshala/internal/adapters/storage/memory"
	mongostorage "github.com/aniketsingh1023/Astroshala/internal/adapters/storage/mongo"
	"github.com/aniketsingh1023/Astroshala/internal/app/chat"
	"github.com/aniketsingh1023/Astroshala/internal/app/generate"
	"github.com/aniketsingh1023/Astroshala/internal/app/retrieval"
	"github.com/aniketsingh1023/Astroshala/internal/config"
	"github.com/aniketsingh1023/Astroshala/internal/domain"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Chat model backend
	var (
		model domain.ChatModel
		err   error
	)
	switch cfg.LLMBackend {
	case config.LLMVertex:
		log.Println("[LLM] Using Vertex AI chat backend")
		model, err = llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.VertexModel)
		if err != nil {
			log.Fatalf("error initializing Vertex client: %v", err)
		}
	case config.LLMMock:
		log.Println("[LLM] No live model, canned responses only")
		model = nil
	default:
		log.Println("[LLM] Using OpenAI chat backend")
		model, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("error initializing OpenAI client: %v", err)
		}
	}

	// Embedder: shares the OpenAI credentials; without them retrieval
	// degrades to text search inside the Retriever.
	var embedder domain.Embedder
	if cfg.OpenAIAPIKey != "" {
		embedder, err = embedding.NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.EmbeddingModel)
		if err != nil {
			log.Fatalf("error initializing embedder: %v", err)
		}
	} else {
		log.Println("[EMBED] No API key, using deterministic hash embeddings")
		embedder = embedding.Deterministic(64)
	}

	// Storage: MongoDB or in-memory
	var (
		index  domain.DocumentIndex
		store  domain.ConversationStore
		pinger httpadapter.Pinger
	)
	switch cfg.StorageBackend {
	case "mongo":
		log.Printf("[STORE] Using MongoDB storage (db=%s)", cfg.MongoDatabase)
		client, err := mongostorage.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("error connecting to MongoDB: %v", err)
		}
		db := client.Database(cfg.MongoDatabase)
		index = mongostorage.NewIndex(db, cfg.ChunkCollection, cfg.VectorIndexName)
		store = mongostorage.NewStore(db)
		pinger = mongostorage.NewHealth(client)
	default:
		log.Println("[STORE] Using in-memory storage")
		index = memstorage.NewIndex()
		store = memstorage.NewStore()
	}

	retriever := retrieval.NewRetriever(embedder, index, cfg.TopK)
	generator := generate.New(model)
	svc := chat.NewService(retriever, generator, store, cfg.MaxChatTokens)

	handler := httpadapter.NewServer(svc, index, pinger, []byte(cfg.JWTSecret))

	addr := ":" + cfg.Port
	log.Println("Astroshala API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
