package retrieval

import (
	"context"
	"log/slog"
	"time"

	"github.com/aniketsingh1023/Astroshala/internal/domain"
	"github.com/aniketsingh1023/Astroshala/internal/observability"
)

// NoContextNote is returned in RetrievalResult.Note when nothing could be
// retrieved from the knowledge base.
const NoContextNote = "No specific information found in the knowledge base for this query."

const searchTimeout = 5 * time.Second

// Retriever turns a query into best-effort context passages. Vector search is
// tried first; on error or zero hits it degrades to text search, and when
// both paths fail it returns an empty result with the sentinel note.
type Retriever struct {
	embedder domain.Embedder
	index    domain.DocumentIndex
	topK     int
}

func NewRetriever(embedder domain.Embedder, index domain.DocumentIndex, topK int) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{
		embedder: embedder,
		index:    index,
		topK:     topK,
	}
}

// Retrieve never returns an error: every failure degrades to an emptier but
// well-formed result.
func (r *Retriever) Retrieve(ctx context.Context, query string) domain.RetrievalResult {
	log := observability.LoggerFromContext(ctx).With("query_len", len(query), "top_k", r.topK)

	if passages := r.vectorSearch(ctx, log, query); len(passages) > 0 {
		return domain.RetrievalResult{Passages: passages}
	}

	sctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	passages, err := r.index.TextSearch(sctx, query, r.topK)
	if err != nil {
		log.Error("text search failed", "error", err)
		return domain.RetrievalResult{Note: NoContextNote}
	}
	if len(passages) == 0 {
		log.Warn("no relevant documents found for the query")
		return domain.RetrievalResult{Note: NoContextNote}
	}

	log.Info("text search fallback found results", "count", len(passages))
	return domain.RetrievalResult{Passages: passages}
}

func (r *Retriever) vectorSearch(ctx context.Context, log *slog.Logger, query string) []domain.Passage {
	sctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	vector, err := r.embedder.Embed(sctx, query)
	if err != nil {
		log.Warn("embedding query failed, falling back to text search", "error", err)
		return nil
	}

	passages, err := r.index.VectorSearch(sctx, vector, r.topK)
	if err != nil {
		log.Warn("vector search failed, falling back to text search", "error", err)
		return nil
	}
	if len(passages) == 0 {
		log.Info("vector search returned no results, trying text search")
		return nil
	}

	log.Info("vector search found results", "count", len(passages))
	return passages
}
