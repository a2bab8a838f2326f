package slog

import (
	"context"
	"log/slog"
	"time"

	docsmaker "github.com/masterdubs/docs-maker"
)

// Ensure LoggingEmbedder implements docsmaker.Embedder.
var _ docsmaker.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with debug logging. Embedding is the
// hot path of a crawl, so records go out at debug level.
type LoggingEmbedder struct {
	next   docsmaker.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next docsmaker.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, text string) (vec []float32, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("embed",
			"chars", len(text),
			"dim", len(vec),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, text)
}
