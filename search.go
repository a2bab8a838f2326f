package docsmaker

import (
	"context"
	"math"
)

// SearchResult is one ranked section match. URL, Title, and Summary come
// from the section's parent document.
type SearchResult struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Section string  `json:"section"`
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
}

// Searcher ranks persisted sections against a free-text query.
type Searcher interface {
	// Search embeds the query once and returns up to topK results ordered
	// by descending cosine similarity. Ties are broken by URL, then
	// section label, so result order is deterministic across runs.
	Search(ctx context.Context, query string, topK int) ([]SearchResult, error)
}

// Cosine returns the cosine similarity between two vectors in [-1, 1].
// Mismatched lengths and zero vectors score 0.
func Cosine(a, b []float32) float64 {
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
