package mock

import (
	"context"

	docsmaker "github.com/masterdubs/docs-maker"
)

var _ docsmaker.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docsmaker.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}
