package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// DeterministicEmbedder maps text to a fixed-size vector by hashing tokens
// into buckets. It has no semantic power but is stable across calls, which
// is enough for local development and tests against the in-memory index.
type DeterministicEmbedder struct {
	dim int
}

func Deterministic(dim int) *DeterministicEmbedder {
	if dim <= 0 {
		dim = 64
	}
	return &DeterministicEmbedder{dim: dim}
}

func (e *DeterministicEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dim)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[int(h.Sum32())%e.dim]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}
