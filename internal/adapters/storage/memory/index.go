package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/aniketsingh1023/Astroshala/internal/domain"
)

// Index is an in-memory domain.DocumentIndex for local mode and tests.
// Vector search ranks by cosine similarity; text search ranks by keyword
// match count. Ties preserve insertion order.
type Index struct {
	mu     sync.RWMutex
	chunks []domain.DocumentChunk
}

func NewIndex() *Index {
	return &Index{}
}

// Add stores chunks in insertion order.
func (i *Index) Add(chunks ...domain.DocumentChunk) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.chunks = append(i.chunks, chunks...)
}

func (i *Index) VectorSearch(_ context.Context, vector []float32, k int) ([]domain.Passage, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	passages := make([]domain.Passage, 0, len(i.chunks))
	for _, c := range i.chunks {
		passages = append(passages, domain.Passage{
			Text:       c.Text,
			Score:      cosineSimilarity(vector, c.Embedding),
			Filename:   c.Filename,
			ChunkIndex: c.ChunkIndex,
		})
	}
	return topByScore(passages, k), nil
}

func (i *Index) TextSearch(_ context.Context, query string, k int) ([]domain.Passage, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(query))
	var passages []domain.Passage
	for _, c := range i.chunks {
		text := strings.ToLower(c.Text)
		matches := 0
		for _, t := range terms {
			if strings.Contains(text, t) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		passages = append(passages, domain.Passage{
			Text:       c.Text,
			Score:      float64(matches),
			Filename:   c.Filename,
			ChunkIndex: c.ChunkIndex,
		})
	}
	return topByScore(passages, k), nil
}

func (i *Index) Count(_ context.Context) (int64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return int64(len(i.chunks)), nil
}

// topByScore sorts descending by score with a stable sort so equal scores
// keep insertion order, then truncates to k.
func topByScore(passages []domain.Passage, k int) []domain.Passage {
	sort.SliceStable(passages, func(a, b int) bool {
		return passages[a].Score > passages[b].Score
	})
	if len(passages) > k {
		passages = passages[:k]
	}
	return passages
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
