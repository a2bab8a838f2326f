// Package fs implements file-based storage for documents, embeddings, and
// the metadata catalog under a single base directory:
//
//	content/<id>.json   structured documents
//	embeddings/<id>.vec binary embedding record sets
//	metadata.json       id -> MetadataEntry catalog, rewritten in full
//	repos/<name>/       raw repository clones (written by the git ingester)
//
// Every write goes through a temp-file-plus-rename so readers never observe
// a partially written file.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	docsmaker "github.com/masterdubs/docs-maker"
)

const (
	contentDir    = "content"
	embeddingsDir = "embeddings"
	reposDir      = "repos"
	metadataFile  = "metadata.json"
	vecExt        = ".vec"
)

// Ensure Store implements the storage interfaces at compile time.
var (
	_ docsmaker.DocumentStore  = (*Store)(nil)
	_ docsmaker.EmbeddingStore = (*Store)(nil)
	_ docsmaker.MetadataStore  = (*Store)(nil)
)

// Store persists the whole corpus under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Open creates the directory layout. Call once before use.
func (s *Store) Open() error {
	for _, dir := range []string{contentDir, embeddingsDir, reposDir} {
		if err := os.MkdirAll(filepath.Join(s.baseDir, dir), 0o755); err != nil {
			return err
		}
	}
	return nil
}

// RepoDir returns the directory that repository clones live under.
func (s *Store) RepoDir() string {
	return filepath.Join(s.baseDir, reposDir)
}

// SaveDocument writes the document as indented JSON, replacing any previous
// version atomically.
func (s *Store) SaveDocument(ctx context.Context, id string, doc *docsmaker.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.baseDir, contentDir, id+".json"), data)
}

// LoadDocument reads the document stored under the identifier.
func (s *Store) LoadDocument(ctx context.Context, id string) (*docsmaker.Document, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, contentDir, id+".json"))
	if os.IsNotExist(err) {
		return nil, docsmaker.Errorf(docsmaker.ENOTFOUND, "document %q not found", id)
	} else if err != nil {
		return nil, err
	}

	var doc docsmaker.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "corrupt document %q: %v", id, err)
	}
	return &doc, nil
}

// UpsertMetadata inserts or replaces the entry for entry.ID and rewrites
// the catalog in full. Full rewrites are fine at the scale of a locally
// curated corpus.
func (s *Store) UpsertMetadata(ctx context.Context, entry docsmaker.MetadataEntry) error {
	if entry.ID == "" {
		return docsmaker.Errorf(docsmaker.EINVALID, "metadata entry ID required")
	}

	catalog, err := s.LoadMetadata(ctx)
	if err != nil {
		return err
	}
	catalog[entry.ID] = entry

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.baseDir, metadataFile), data)
}

// LoadMetadata returns the full catalog; a missing catalog file is an empty
// map.
func (s *Store) LoadMetadata(ctx context.Context) (map[string]docsmaker.MetadataEntry, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, metadataFile))
	if os.IsNotExist(err) {
		return map[string]docsmaker.MetadataEntry{}, nil
	} else if err != nil {
		return nil, err
	}

	catalog := map[string]docsmaker.MetadataEntry{}
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, docsmaker.Errorf(docsmaker.EINTERNAL, "corrupt metadata catalog: %v", err)
	}
	return catalog, nil
}

// SaveEmbeddings writes the record set in the binary vec format. The write
// is all-or-nothing so a store can never reference a label whose vector
// failed to land. Duplicate labels collapse to a single record holding the
// later vector at the earlier position.
func (s *Store) SaveEmbeddings(ctx context.Context, id string, records []docsmaker.EmbeddingRecord) error {
	data, err := encodeRecords(dedupeRecords(records))
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.baseDir, embeddingsDir, id+vecExt), data)
}

// LoadEmbeddings reads the record set stored under the identifier.
func (s *Store) LoadEmbeddings(ctx context.Context, id string) ([]docsmaker.EmbeddingRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, embeddingsDir, id+vecExt))
	if os.IsNotExist(err) {
		return nil, docsmaker.Errorf(docsmaker.ENOTFOUND, "embeddings %q not found", id)
	} else if err != nil {
		return nil, err
	}
	return decodeRecords(data)
}

// ListEmbeddings returns the identifier of every persisted record set, in
// directory order.
func (s *Store) ListEmbeddings(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, embeddingsDir))
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, vecExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, vecExt))
	}
	return ids, nil
}

// dedupeRecords collapses records sharing a label: the label keeps its
// first position in the set and the last vector written for it.
func dedupeRecords(records []docsmaker.EmbeddingRecord) []docsmaker.EmbeddingRecord {
	deduped := make([]docsmaker.EmbeddingRecord, 0, len(records))
	index := make(map[string]int, len(records))
	for _, rec := range records {
		if i, ok := index[rec.Label]; ok {
			deduped[i] = rec
			continue
		}
		index[rec.Label] = len(deduped)
		deduped = append(deduped, rec)
	}
	return deduped
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
