package docsmaker

import (
	"context"
	"strings"
)

// EmbeddingRecord pairs a section or subsection title with its vector.
type EmbeddingRecord struct {
	Label  string
	Vector []float32
}

// Embedder converts text into a fixed-length vector. Implementations wrap
// an external embedding model and must be safe to call repeatedly after
// construction.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingStore persists one set of embedding records per document,
// addressed by the same derived identifier as the document itself.
// A store write is atomic: either every record lands or none do.
//
// Labels within a set are unique; when two sections in one document share a
// title the later record wins. Loading is the exact inverse of persisting,
// bit-for-bit on the vector payload.
type EmbeddingStore interface {
	SaveEmbeddings(ctx context.Context, id string, records []EmbeddingRecord) error

	// LoadEmbeddings returns ENOTFOUND if no set exists for the identifier.
	LoadEmbeddings(ctx context.Context, id string) ([]EmbeddingRecord, error)

	// ListEmbeddings returns the identifiers of every persisted set.
	ListEmbeddings(ctx context.Context) ([]string, error)
}

// EmbedDocument produces one embedding record per section and one per
// subsection of a finalized document. The embedded text is the title and
// the content lines joined by newlines.
func EmbedDocument(ctx context.Context, embedder Embedder, doc *Document) ([]EmbeddingRecord, error) {
	records := make([]EmbeddingRecord, 0, doc.SectionCount())

	embed := func(title string, content []string) error {
		text := title + "\n" + strings.Join(content, "\n")
		vec, err := embedder.Embed(ctx, text)
		if err != nil {
			return err
		}
		records = append(records, EmbeddingRecord{Label: title, Vector: vec})
		return nil
	}

	for _, section := range doc.Sections {
		if err := embed(section.Title, section.Content); err != nil {
			return nil, err
		}
		for _, sub := range section.Subsections {
			if err := embed(sub.Title, sub.Content); err != nil {
				return nil, err
			}
		}
	}

	return records, nil
}
