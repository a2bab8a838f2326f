package mock

import (
	"context"

	docsmaker "github.com/masterdubs/docs-maker"
)

var _ docsmaker.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of docsmaker.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, topK int) ([]docsmaker.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]docsmaker.SearchResult, error) {
	return s.SearchFn(ctx, query, topK)
}
