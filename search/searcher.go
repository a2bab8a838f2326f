// Package search ranks persisted document sections against free-text
// queries by cosine similarity over their embeddings.
package search

import (
	"context"
	"sort"
	"sync"

	docsmaker "github.com/masterdubs/docs-maker"
	"golang.org/x/sync/errgroup"
)

// scanConcurrency bounds the number of embedding stores read at once.
const scanConcurrency = 8

// Ensure Searcher implements docsmaker.Searcher at compile time.
var _ docsmaker.Searcher = (*Searcher)(nil)

// Searcher scans every persisted embedding store and scores each section
// against the query vector. The scan is a full linear pass, which is fine
// for a locally curated corpus; reads are safe to run concurrently with an
// in-progress crawl but may observe a partial snapshot.
type Searcher struct {
	Embedder   docsmaker.Embedder
	Documents  docsmaker.DocumentStore
	Embeddings docsmaker.EmbeddingStore
}

// NewSearcher creates a Searcher over the given stores.
func NewSearcher(embedder docsmaker.Embedder, documents docsmaker.DocumentStore, embeddings docsmaker.EmbeddingStore) *Searcher {
	return &Searcher{
		Embedder:   embedder,
		Documents:  documents,
		Embeddings: embeddings,
	}
}

// Search embeds the query once, scores every stored (label, vector) pair,
// and returns the topK best matches. Results are ordered by descending
// score with URL then section label as tie-breakers, so equal scores rank
// deterministically across runs.
func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]docsmaker.SearchResult, error) {
	if query == "" {
		return nil, docsmaker.Errorf(docsmaker.EINVALID, "search query required")
	}
	if topK <= 0 {
		return nil, docsmaker.Errorf(docsmaker.EINVALID, "topK must be positive")
	}

	queryVec, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	ids, err := s.Embeddings.ListEmbeddings(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var results []docsmaker.SearchResult

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scanConcurrency)

	for _, id := range ids {
		g.Go(func() error {
			rows, err := s.scanStore(gctx, id, queryVec)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, rows...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].URL != results[j].URL {
			return results[i].URL < results[j].URL
		}
		return results[i].Section < results[j].Section
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// scanStore scores one document's record set. A store whose document has
// gone missing is an orphan from a partially observed crawl and is skipped.
func (s *Searcher) scanStore(ctx context.Context, id string, queryVec []float32) ([]docsmaker.SearchResult, error) {
	records, err := s.Embeddings.LoadEmbeddings(ctx, id)
	if err != nil {
		if docsmaker.ErrorCode(err) == docsmaker.ENOTFOUND {
			return nil, nil
		}
		return nil, err
	}

	doc, err := s.Documents.LoadDocument(ctx, id)
	if err != nil {
		if docsmaker.ErrorCode(err) == docsmaker.ENOTFOUND {
			return nil, nil
		}
		return nil, err
	}

	results := make([]docsmaker.SearchResult, 0, len(records))
	for _, rec := range records {
		results = append(results, docsmaker.SearchResult{
			URL:     doc.URL,
			Title:   doc.Title,
			Section: rec.Label,
			Score:   docsmaker.Cosine(queryVec, rec.Vector),
			Summary: doc.Summary,
		})
	}
	return results, nil
}
