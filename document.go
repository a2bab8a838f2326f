package docsmaker

import (
	"context"
	"time"
)

// Source classifies where a document came from.
type Source string

// Document sources. Pages crawled from github.com hosts are tagged as
// github; files ingested from a cloned repository as github_file.
const (
	SourceDocumentation Source = "documentation"
	SourceGitHub        Source = "github"
	SourceGitHubFile    Source = "github_file"
)

// Document represents a crawled documentation page restructured into a
// two-level section hierarchy. Identity is the canonical URL; a document is
// immutable once written and replaced wholesale on refresh.
type Document struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Sections  []Section `json:"sections"`
	Summary   string    `json:"summary"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Section is a top-level content grouping opened by a level-1 heading.
// Lines that precede any heading attach to an implicit anonymous section
// with an empty title.
type Section struct {
	Title       string       `json:"title"`
	Content     []string     `json:"content"`
	Subsections []Subsection `json:"subsections"`
}

// Subsection is a second-level grouping nested under exactly one Section.
type Subsection struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// Empty reports whether the section carries no content and no subsections.
// Empty sections are not retained in a document.
func (s *Section) Empty() bool {
	return len(s.Content) == 0 && len(s.Subsections) == 0
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// SectionCount returns the number of sections plus subsections, which is
// also the number of embedding records the document produces.
func (d *Document) SectionCount() int {
	n := 0
	for _, s := range d.Sections {
		n++
		n += len(s.Subsections)
	}
	return n
}

// MetadataEntry describes a persisted document in the corpus catalog.
type MetadataEntry struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	FetchedAt time.Time `json:"fetchedAt"`
	Source    Source    `json:"source"`
	Depth     int       `json:"depth"`
	Summary   string    `json:"summary"`
}

// DocumentStore persists and loads documents keyed by their derived
// identifier.
type DocumentStore interface {
	// SaveDocument writes the document under the given identifier,
	// replacing any previous version atomically.
	SaveDocument(ctx context.Context, id string, doc *Document) error

	// LoadDocument reads the document stored under the identifier.
	// Returns ENOTFOUND if no such document exists.
	LoadDocument(ctx context.Context, id string) (*Document, error)
}

// MetadataStore maintains the id -> MetadataEntry catalog. Implementations
// rewrite the catalog in full on every update; entries for an existing
// identifier are replaced, not appended.
type MetadataStore interface {
	// UpsertMetadata inserts or replaces the entry for entry.ID.
	UpsertMetadata(ctx context.Context, entry MetadataEntry) error

	// LoadMetadata returns the full catalog. A missing catalog is an
	// empty map, not an error.
	LoadMetadata(ctx context.Context) (map[string]MetadataEntry, error)
}
