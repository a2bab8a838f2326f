package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	docsmaker "github.com/masterdubs/docs-maker"
	"github.com/masterdubs/docs-maker/crawl"
)

// Crawler is the subset of crawl.Crawler the commands use.
type Crawler interface {
	Crawl(ctx context.Context, seed string, maxDepth int) (string, crawl.Result, error)
	Refresh(ctx context.Context, urls []string) (crawl.Result, error)
}

// Ingester is the subset of git.Ingester the commands use.
type Ingester interface {
	Ingest(ctx context.Context, repoURL string) ([]string, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Crawler  Crawler
	Ingester Ingester
	Searcher docsmaker.Searcher
	Metadata docsmaker.MetadataStore
	Detector *SourceDetector
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir      string `short:"d" default:"doc-resource" help:"Directory to store scraped content"`
	Embedder string `enum:"gemini,openai" default:"gemini" help:"Embedding backend (gemini or openai)"`

	Process ProcessCmd `cmd:"" help:"Crawl documentation URLs or ingest GitHub repositories"`
	Refresh RefreshCmd `cmd:"" help:"Re-fetch previously crawled documents"`
	Search  SearchCmd  `cmd:"" help:"Search documentation by semantic similarity"`
	List    ListCmd    `cmd:"" help:"List all stored documents"`
}

// ProcessCmd is the "process" subcommand. Each URL is dispatched to the
// repository ingester or the crawler based on its detected kind.
type ProcessCmd struct {
	URLs  []string `arg:"" help:"Seed URLs to crawl or repository URLs to ingest"`
	Depth int      `default:"2" help:"Maximum depth to follow links"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct {
	URLs []string `arg:"" optional:"" help:"Specific URLs to refresh (default: everything recorded)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Free-text query"`
	TopK  int    `name:"top-k" default:"5" help:"Number of top results to return"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// Run dispatches each URL by kind and reports progress.
func (c *ProcessCmd) Run(deps *Dependencies) error {
	for _, rawURL := range c.URLs {
		kind := deps.Detector.Detect(deps.Ctx, rawURL)

		switch kind {
		case KindRepository:
			ids, err := deps.Ingester.Ingest(deps.Ctx, rawURL)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error ingesting %s: %s\n", rawURL, docsmaker.ErrorMessage(err))
				continue
			}
			fmt.Fprintf(deps.Stdout, "Ingested %d files from %s\n", len(ids), rawURL)

		default:
			if kind == KindUnknown {
				fmt.Fprintf(deps.Stderr, "warning: unable to determine URL type for %s, treating as documentation\n", rawURL)
			}
			_, result, err := deps.Crawler.Crawl(deps.Ctx, rawURL, c.Depth)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "Crawled %s: %d saved, %d failed\n", rawURL, result.Saved, result.Failed)
		}
	}
	return nil
}

// Run re-crawls recorded documents at their last recorded depth.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	result, err := deps.Crawler.Refresh(deps.Ctx, c.URLs)
	if docsmaker.ErrorCode(err) == docsmaker.ENOTFOUND {
		fmt.Fprintln(deps.Stdout, "No documents to refresh.")
		return nil
	} else if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Refreshed: %d saved, %d failed\n", result.Saved, result.Failed)
	return nil
}

// Run prints the top matches for the query.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Searcher.Search(deps.Ctx, c.Query, c.TopK)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for i, result := range results {
		fmt.Fprintf(deps.Stdout, "\n%d. %s - %s\n", i+1, result.Title, result.Section)
		fmt.Fprintf(deps.Stdout, "URL: %s\n", result.URL)
		fmt.Fprintf(deps.Stdout, "Relevance: %.2f\n", result.Score)
		fmt.Fprintf(deps.Stdout, "Summary: %s\n", result.Summary)
	}
	return nil
}

// Run prints every catalog entry, ordered by identifier for stable output.
func (c *ListCmd) Run(deps *Dependencies) error {
	catalog, err := deps.Metadata.LoadMetadata(deps.Ctx)
	if err != nil {
		return err
	}
	if len(catalog) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents stored.")
		return nil
	}

	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		entry := catalog[id]
		fmt.Fprintf(deps.Stdout, "\nDocument ID: %s\n", id)
		fmt.Fprintf(deps.Stdout, "Title: %s\n", entry.Title)
		fmt.Fprintf(deps.Stdout, "URL: %s\n", entry.URL)
		fmt.Fprintf(deps.Stdout, "Fetched: %s\n", entry.FetchedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(deps.Stdout, "Type: %s\n", entry.Source)
		fmt.Fprintf(deps.Stdout, "Depth: %d\n", entry.Depth)
		if entry.Summary != "" {
			fmt.Fprintf(deps.Stdout, "Summary: %s\n", entry.Summary)
		}
	}
	return nil
}
