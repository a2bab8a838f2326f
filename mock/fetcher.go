// Package mock provides hand-written mock implementations of docsmaker
// interfaces for testing.
package mock

import (
	"context"

	docsmaker "github.com/masterdubs/docs-maker"
)

var _ docsmaker.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docsmaker.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
