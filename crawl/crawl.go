// Package crawl provides depth-bounded documentation crawling. It
// coordinates fetching, structuring, embedding, and persistence of pages,
// following in-domain links up to a maximum depth.
package crawl

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/google/uuid"
	docsmaker "github.com/masterdubs/docs-maker"
)

// item is one pending traversal entry: a resolved URL and the depth it was
// first reachable at.
type item struct {
	url   string
	depth int
}

// Crawler walks a documentation site depth-first from a seed URL. It owns
// the visited set for the lifetime of the process and processes one URL at
// a time; it is not safe for concurrent use.
type Crawler struct {
	Fetcher    docsmaker.Fetcher
	Structurer docsmaker.Structurer
	Embedder   docsmaker.Embedder
	Links      docsmaker.LinkExtractor
	Documents  docsmaker.DocumentStore
	Embeddings docsmaker.EmbeddingStore
	Metadata   docsmaker.MetadataStore
	Logger     *slog.Logger

	visited map[string]struct{}
}

// Result holds the outcome of a crawl or refresh operation.
type Result struct {
	Saved  int
	Failed int
}

// SeedVisited marks every URL already present in the metadata catalog as
// visited, so a fresh invocation does not re-fetch known pages. Call once
// at startup; Refresh clears the set itself.
func (c *Crawler) SeedVisited(ctx context.Context) error {
	catalog, err := c.Metadata.LoadMetadata(ctx)
	if err != nil {
		return err
	}
	for _, entry := range catalog {
		c.markVisited(entry.URL)
	}
	return nil
}

// Crawl traverses the site depth-first from seed, persisting every reachable
// page within maxDepth hops. Returns the seed document's identifier, or ""
// when the seed itself could not be fetched. Individual page failures are
// logged and do not stop the traversal; the only hard errors are an invalid
// seed URL and context cancellation.
func (c *Crawler) Crawl(ctx context.Context, seed string, maxDepth int) (string, Result, error) {
	if _, err := url.Parse(seed); err != nil {
		return "", Result{}, docsmaker.Errorf(docsmaker.EINVALID, "invalid seed URL %q: %v", seed, err)
	}

	logger := c.logger().With("run", uuid.NewString(), "seed", seed)

	var result Result
	var seedID string

	stack := []item{{url: seed, depth: 0}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return seedID, result, err
		}

		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if next.depth > maxDepth || c.isVisited(next.url) {
			continue
		}
		// Mark before fetching so cycles through the page being fetched
		// cannot cause a second fetch of the same URL.
		c.markVisited(next.url)

		logger.Info("crawling", "url", next.url, "depth", next.depth)

		id, links, ok := c.processPage(ctx, logger, next)
		if !ok {
			result.Failed++
			continue
		}
		result.Saved++
		if next.depth == 0 && seedID == "" {
			seedID = id
		}

		if next.depth < maxDepth {
			// Reverse push so the stack pops children in page order.
			for i := len(links) - 1; i >= 0; i-- {
				stack = append(stack, item{url: links[i], depth: next.depth + 1})
			}
		}
	}

	return seedID, result, nil
}

// processPage drives one URL through fetch, structure, embed, and persist.
// Returns the document identifier and the filtered outbound links.
func (c *Crawler) processPage(ctx context.Context, logger *slog.Logger, next item) (string, []string, bool) {
	html, err := c.Fetcher.Fetch(ctx, next.url)
	if err != nil {
		logger.Warn("fetch failed", "url", next.url, "err", err)
		return "", nil, false
	}

	doc, err := c.Structurer.Structure(html, next.url)
	if err != nil {
		logger.Warn("structuring failed", "url", next.url, "err", err)
		return "", nil, false
	}

	// Embeddings are generated only after the section tree is final.
	records, err := docsmaker.EmbedDocument(ctx, c.Embedder, doc)
	if err != nil {
		logger.Warn("embedding failed", "url", next.url, "err", err)
		return "", nil, false
	}

	id := docsmaker.DocumentID(next.url)
	if err := c.persist(ctx, id, doc, records, next.depth); err != nil {
		logger.Warn("persistence failed", "url", next.url, "err", err)
		return "", nil, false
	}

	logger.Info("persisted", "url", next.url, "id", id, "sections", doc.SectionCount())

	return id, c.outboundLinks(html, next.url), true
}

// persist writes the content, embeddings, and metadata for one document.
// Each write is atomic; a failure skips the remaining writes so a metadata
// entry never references files that failed to land.
func (c *Crawler) persist(ctx context.Context, id string, doc *docsmaker.Document, records []docsmaker.EmbeddingRecord, depth int) error {
	if err := c.Documents.SaveDocument(ctx, id, doc); err != nil {
		return err
	}
	if err := c.Embeddings.SaveEmbeddings(ctx, id, records); err != nil {
		return err
	}
	return c.Metadata.UpsertMetadata(ctx, docsmaker.MetadataEntry{
		ID:        id,
		URL:       doc.URL,
		Title:     doc.Title,
		FetchedAt: doc.FetchedAt,
		Source:    sourceFor(doc.URL),
		Depth:     depth,
		Summary:   doc.Summary,
	})
}

// outboundLinks resolves and filters every anchor on the page, dropping
// URLs already visited in this run.
func (c *Crawler) outboundLinks(html, pageURL string) []string {
	origin, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []string
	for _, href := range c.Links.Links(html) {
		resolved, ok := Followable(href, origin)
		if !ok || c.isVisited(resolved) {
			continue
		}
		links = append(links, resolved)
	}
	return links
}

// Refresh re-crawls previously recorded URLs, or the given URLs, each at
// its last recorded depth. The visited set is cleared first so history does
// not short-circuit the re-fetch. With no prior metadata and no explicit
// URLs there is nothing to do and ENOTFOUND is returned without a single
// fetch.
func (c *Crawler) Refresh(ctx context.Context, urls []string) (Result, error) {
	catalog, err := c.Metadata.LoadMetadata(ctx)
	if err != nil {
		return Result{}, err
	}

	depths := make(map[string]int, len(catalog))
	for _, entry := range catalog {
		depths[entry.URL] = entry.Depth
	}

	targets := urls
	if len(targets) == 0 {
		for url := range depths {
			targets = append(targets, url)
		}
	}
	if len(targets) == 0 {
		return Result{}, docsmaker.Errorf(docsmaker.ENOTFOUND, "nothing to refresh")
	}

	c.visited = nil

	logger := c.logger()
	logger.Info("refreshing documents", "count", len(targets))

	var total Result
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		_, result, err := c.Crawl(ctx, target, depths[target])
		if err != nil {
			return total, err
		}
		total.Saved += result.Saved
		total.Failed += result.Failed
	}

	return total, nil
}

func (c *Crawler) isVisited(url string) bool {
	_, ok := c.visited[url]
	return ok
}

func (c *Crawler) markVisited(url string) {
	if c.visited == nil {
		c.visited = make(map[string]struct{})
	}
	c.visited[url] = struct{}{}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// sourceFor infers the document source from the URL host.
func sourceFor(rawURL string) docsmaker.Source {
	if u, err := url.Parse(rawURL); err == nil && u.Host == "github.com" {
		return docsmaker.SourceGitHub
	}
	return docsmaker.SourceDocumentation
}
