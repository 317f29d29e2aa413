package retrieval_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aniketsingh1023/Astroshala/internal/app/retrieval"
	"github.com/aniketsingh1023/Astroshala/internal/domain"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	return f.vector, f.err
}

type fakeIndex struct {
	vectorHits []domain.Passage
	vectorErr  error
	textHits   []domain.Passage
	textErr    error

	lastK int
}

func (f *fakeIndex) VectorSearch(_ context.Context, _ []float32, k int) ([]domain.Passage, error) {
	f.lastK = k
	return f.vectorHits, f.vectorErr
}

func (f *fakeIndex) TextSearch(_ context.Context, _ string, k int) ([]domain.Passage, error) {
	f.lastK = k
	return f.textHits, f.textErr
}

func (f *fakeIndex) Count(context.Context) (int64, error) {
	return int64(len(f.vectorHits)), nil
}

func passages(texts ...string) []domain.Passage {
	out := make([]domain.Passage, len(texts))
	for i, t := range texts {
		out[i] = domain.Passage{Text: t, Score: float64(len(texts) - i)}
	}
	return out
}

func TestRetrieveVectorSearchSuccess(t *testing.T) {
	r := retrieval.NewRetriever(
		fakeEmbedder{vector: []float32{1, 0}},
		&fakeIndex{vectorHits: passages("a", "b", "c")},
		5,
	)

	result := r.Retrieve(context.Background(), "houses")
	if result.Empty() {
		t.Fatal("expected passages, got empty result")
	}
	if len(result.Passages) != 3 {
		t.Fatalf("expected 3 passages, got %d", len(result.Passages))
	}
	for i := 1; i < len(result.Passages); i++ {
		if result.Passages[i].Score > result.Passages[i-1].Score {
			t.Fatalf("passages not sorted by descending score at %d", i)
		}
	}
	if result.Note != "" {
		t.Fatalf("expected no note on success, got %q", result.Note)
	}
}

func TestRetrieveEmbedFailureFallsBackToTextSearch(t *testing.T) {
	r := retrieval.NewRetriever(
		fakeEmbedder{err: errors.New("embedder unreachable")},
		&fakeIndex{textHits: passages("keyword hit")},
		5,
	)

	result := r.Retrieve(context.Background(), "houses")
	if len(result.Passages) != 1 || result.Passages[0].Text != "keyword hit" {
		t.Fatalf("expected text search fallback result, got %+v", result)
	}
}

func TestRetrieveVectorErrorFallsBackToTextSearch(t *testing.T) {
	r := retrieval.NewRetriever(
		fakeEmbedder{vector: []float32{1, 0}},
		&fakeIndex{vectorErr: errors.New("index missing"), textHits: passages("fallback")},
		5,
	)

	result := r.Retrieve(context.Background(), "houses")
	if len(result.Passages) != 1 || result.Passages[0].Text != "fallback" {
		t.Fatalf("expected text search fallback result, got %+v", result)
	}
}

func TestRetrieveEmptyVectorHitsTriesTextSearch(t *testing.T) {
	r := retrieval.NewRetriever(
		fakeEmbedder{vector: []float32{1, 0}},
		&fakeIndex{textHits: passages("text result")},
		5,
	)

	result := r.Retrieve(context.Background(), "houses")
	if len(result.Passages) != 1 {
		t.Fatalf("expected text fallback when vector search is empty, got %+v", result)
	}
}

func TestRetrieveBothPathsFailReturnsSentinel(t *testing.T) {
	r := retrieval.NewRetriever(
		fakeEmbedder{err: errors.New("down")},
		&fakeIndex{textErr: errors.New("also down")},
		5,
	)

	result := r.Retrieve(context.Background(), "houses")
	if !result.Empty() {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if result.Note != retrieval.NoContextNote {
		t.Fatalf("expected sentinel note, got %q", result.Note)
	}
}

func TestRetrieveEmptyCorpusReturnsSentinel(t *testing.T) {
	r := retrieval.NewRetriever(
		fakeEmbedder{vector: []float32{1, 0}},
		&fakeIndex{},
		5,
	)

	result := r.Retrieve(context.Background(), "houses")
	if !result.Empty() || result.Note != retrieval.NoContextNote {
		t.Fatalf("expected sentinel result on empty corpus, got %+v", result)
	}
}

func TestRetrieveUsesConfiguredTopK(t *testing.T) {
	idx := &fakeIndex{vectorHits: passages("a")}
	r := retrieval.NewRetriever(fakeEmbedder{vector: []float32{1, 0}}, idx, 7)

	r.Retrieve(context.Background(), "houses")
	if idx.lastK != 7 {
		t.Fatalf("expected configured top_k 7 to reach the index, got %d", idx.lastK)
	}
}

func TestRetrieveZeroTopKDefaultsToFive(t *testing.T) {
	idx := &fakeIndex{vectorHits: passages("a")}
	r := retrieval.NewRetriever(fakeEmbedder{vector: []float32{1, 0}}, idx, 0)

	r.Retrieve(context.Background(), "houses")
	if idx.lastK != 5 {
		t.Fatalf("expected default top_k 5, got %d", idx.lastK)
	}
}
