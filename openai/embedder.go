// Package openai implements docsmaker.Embedder using OpenAI's embedding
// API as an alternative to the Gemini backend.
package openai

import (
	"context"

	docsmaker "github.com/masterdubs/docs-maker"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const model = openai.EmbeddingModelTextEmbedding3Small

// Ensure Embedder implements docsmaker.Embedder at compile time.
var _ docsmaker.Embedder = (*Embedder)(nil)

// Embedder generates embeddings using OpenAI's text-embedding-3-small.
type Embedder struct {
	client openai.Client
}

// NewEmbedder creates a new Embedder authenticated with the given API key.
func NewEmbedder(apiKey string) *Embedder {
	return &Embedder{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

// Embed converts text into a fixed-length vector. The API returns float64
// components; they are narrowed to float32 for storage.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: model,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "openai returned no embedding")
	}

	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
