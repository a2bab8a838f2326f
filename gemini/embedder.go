// Package gemini implements docsmaker.Embedder using the Gemini embedding
// API.
package gemini

import (
	"context"

	docsmaker "github.com/masterdubs/docs-maker"
	"google.golang.org/genai"
)

const model = "gemini-embedding-001"

// Ensure Embedder implements docsmaker.Embedder at compile time.
var _ docsmaker.Embedder = (*Embedder)(nil)

// Embedder generates embeddings using Google Gemini. Construct once and
// inject; the client holds connection state worth reusing across calls.
type Embedder struct {
	client *genai.Client
}

// NewEmbedder creates a new Embedder over an authenticated client.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client}
}

// Embed converts text into a fixed-length vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := e.client.Models.EmbedContent(ctx, model, genai.Text(text), nil)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "gemini returned no embedding")
	}
	return result.Embeddings[0].Values, nil
}
