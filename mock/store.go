package mock

import (
	"context"

	docsmaker "github.com/masterdubs/docs-maker"
)

var _ docsmaker.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of docsmaker.DocumentStore.
type DocumentStore struct {
	SaveDocumentFn func(ctx context.Context, id string, doc *docsmaker.Document) error
	LoadDocumentFn func(ctx context.Context, id string) (*docsmaker.Document, error)
}

func (s *DocumentStore) SaveDocument(ctx context.Context, id string, doc *docsmaker.Document) error {
	return s.SaveDocumentFn(ctx, id, doc)
}

func (s *DocumentStore) LoadDocument(ctx context.Context, id string) (*docsmaker.Document, error) {
	return s.LoadDocumentFn(ctx, id)
}

var _ docsmaker.EmbeddingStore = (*EmbeddingStore)(nil)

// EmbeddingStore is a mock implementation of docsmaker.EmbeddingStore.
type EmbeddingStore struct {
	SaveEmbeddingsFn func(ctx context.Context, id string, records []docsmaker.EmbeddingRecord) error
	LoadEmbeddingsFn func(ctx context.Context, id string) ([]docsmaker.EmbeddingRecord, error)
	ListEmbeddingsFn func(ctx context.Context) ([]string, error)
}

func (s *EmbeddingStore) SaveEmbeddings(ctx context.Context, id string, records []docsmaker.EmbeddingRecord) error {
	return s.SaveEmbeddingsFn(ctx, id, records)
}

func (s *EmbeddingStore) LoadEmbeddings(ctx context.Context, id string) ([]docsmaker.EmbeddingRecord, error) {
	return s.LoadEmbeddingsFn(ctx, id)
}

func (s *EmbeddingStore) ListEmbeddings(ctx context.Context) ([]string, error) {
	return s.ListEmbeddingsFn(ctx)
}

var _ docsmaker.MetadataStore = (*MetadataStore)(nil)

// MetadataStore is a mock implementation of docsmaker.MetadataStore.
type MetadataStore struct {
	UpsertMetadataFn func(ctx context.Context, entry docsmaker.MetadataEntry) error
	LoadMetadataFn   func(ctx context.Context) (map[string]docsmaker.MetadataEntry, error)
}

func (s *MetadataStore) UpsertMetadata(ctx context.Context, entry docsmaker.MetadataEntry) error {
	return s.UpsertMetadataFn(ctx, entry)
}

func (s *MetadataStore) LoadMetadata(ctx context.Context) (map[string]docsmaker.MetadataEntry, error) {
	return s.LoadMetadataFn(ctx)
}
