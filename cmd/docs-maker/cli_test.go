package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	docsmaker "github.com/masterdubs/docs-maker"
	main "github.com/masterdubs/docs-maker/cmd/docs-maker"
	"github.com/masterdubs/docs-maker/crawl"
	"github.com/masterdubs/docs-maker/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crawlerMock implements main.Crawler.
type crawlerMock struct {
	CrawlFn   func(ctx context.Context, seed string, maxDepth int) (string, crawl.Result, error)
	RefreshFn func(ctx context.Context, urls []string) (crawl.Result, error)
}

func (m *crawlerMock) Crawl(ctx context.Context, seed string, maxDepth int) (string, crawl.Result, error) {
	return m.CrawlFn(ctx, seed, maxDepth)
}

func (m *crawlerMock) Refresh(ctx context.Context, urls []string) (crawl.Result, error) {
	return m.RefreshFn(ctx, urls)
}

// ingesterMock implements main.Ingester.
type ingesterMock struct {
	IngestFn func(ctx context.Context, repoURL string) ([]string, error)
}

func (m *ingesterMock) Ingest(ctx context.Context, repoURL string) ([]string, error) {
	return m.IngestFn(ctx, repoURL)
}

func newDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"process", "refresh", "search", "list"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.BaseDir = t.TempDir()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range []string{"process", "refresh", "search", "list"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
}

func TestMain_Run_NoArgsShowsHelp(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.BaseDir = t.TempDir()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestProcessCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("repository URLs go to the ingester", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Detector = &main.SourceDetector{}
		deps.Ingester = &ingesterMock{
			IngestFn: func(_ context.Context, repoURL string) ([]string, error) {
				assert.Equal(t, "https://github.com/acme/widgets", repoURL)
				return []string{"a", "b", "c"}, nil
			},
		}
		deps.Crawler = &crawlerMock{
			CrawlFn: func(context.Context, string, int) (string, crawl.Result, error) {
				t.Fatal("crawler should not be called for a repository URL")
				return "", crawl.Result{}, nil
			},
		}

		cmd := &main.ProcessCmd{URLs: []string{"https://github.com/acme/widgets"}, Depth: 2}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "Ingested 3 files")
	})

	t.Run("documentation URLs go to the crawler with the requested depth", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Detector = &main.SourceDetector{}
		deps.Crawler = &crawlerMock{
			CrawlFn: func(_ context.Context, seed string, maxDepth int) (string, crawl.Result, error) {
				assert.Equal(t, "https://docs.python.org/3/", seed)
				assert.Equal(t, 3, maxDepth)
				return "id", crawl.Result{Saved: 5, Failed: 1}, nil
			},
		}

		cmd := &main.ProcessCmd{URLs: []string{"https://docs.python.org/3/"}, Depth: 3}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "5 saved, 1 failed")
		assert.Empty(t, stderr.String())
	})

	t.Run("unrecognized URLs warn and fall back to crawling", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Detector = &main.SourceDetector{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "", errors.New("unreachable")
				},
			},
		}
		crawled := false
		deps.Crawler = &crawlerMock{
			CrawlFn: func(context.Context, string, int) (string, crawl.Result, error) {
				crawled = true
				return "id", crawl.Result{Saved: 1}, nil
			},
		}

		cmd := &main.ProcessCmd{URLs: []string{"https://example.com/page"}, Depth: 2}
		require.NoError(t, cmd.Run(deps))

		assert.True(t, crawled)
		assert.Contains(t, stderr.String(), "unable to determine URL type")
	})

	t.Run("ingestion failure is reported and does not stop remaining URLs", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Detector = &main.SourceDetector{}
		deps.Ingester = &ingesterMock{
			IngestFn: func(_ context.Context, repoURL string) ([]string, error) {
				if repoURL == "https://github.com/acme/broken" {
					return nil, docsmaker.Errorf(docsmaker.EUNAVAILABLE, "clone failed")
				}
				return []string{"a"}, nil
			},
		}

		cmd := &main.ProcessCmd{URLs: []string{
			"https://github.com/acme/broken",
			"https://github.com/acme/widgets",
		}}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stderr.String(), "clone failed")
		assert.Contains(t, stdout.String(), "Ingested 1 files")
	})
}

func TestRefreshCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports refresh counts", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Crawler = &crawlerMock{
			RefreshFn: func(_ context.Context, urls []string) (crawl.Result, error) {
				assert.Equal(t, []string{"https://docs.example.com/"}, urls)
				return crawl.Result{Saved: 2}, nil
			},
		}

		cmd := &main.RefreshCmd{URLs: []string{"https://docs.example.com/"}}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "Refreshed: 2 saved, 0 failed")
	})

	t.Run("empty corpus is not an error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Crawler = &crawlerMock{
			RefreshFn: func(context.Context, []string) (crawl.Result, error) {
				return crawl.Result{}, docsmaker.Errorf(docsmaker.ENOTFOUND, "nothing to refresh")
			},
		}

		cmd := &main.RefreshCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "No documents to refresh.")
	})
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints ranked results", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Searcher = &mock.Searcher{
			SearchFn: func(_ context.Context, query string, topK int) ([]docsmaker.SearchResult, error) {
				assert.Equal(t, "install widgets", query)
				assert.Equal(t, 2, topK)
				return []docsmaker.SearchResult{
					{URL: "https://docs.example.com/install", Title: "Install", Section: "Install / Quick start", Score: 0.92, Summary: "How to install."},
					{URL: "https://docs.example.com/faq", Title: "FAQ", Section: "FAQ", Score: 0.41, Summary: "Common questions."},
				}, nil
			},
		}

		cmd := &main.SearchCmd{Query: "install widgets", TopK: 2}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "1. Install - Install / Quick start")
		assert.Contains(t, output, "Relevance: 0.92")
		assert.Contains(t, output, "2. FAQ - FAQ")
		assert.Contains(t, output, "URL: https://docs.example.com/faq")
	})

	t.Run("no matches", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Searcher = &mock.Searcher{
			SearchFn: func(context.Context, string, int) ([]docsmaker.SearchResult, error) {
				return nil, nil
			},
		}

		cmd := &main.SearchCmd{Query: "anything", TopK: 5}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "No results.")
	})
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists entries sorted by identifier", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Metadata = &mock.MetadataStore{
			LoadMetadataFn: func(context.Context) (map[string]docsmaker.MetadataEntry, error) {
				return map[string]docsmaker.MetadataEntry{
					"b-id": {ID: "b-id", URL: "https://docs.example.com/b", Title: "B Page", FetchedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC), Source: docsmaker.SourceDocumentation, Depth: 1},
					"a-id": {ID: "a-id", URL: "https://docs.example.com/a", Title: "A Page", FetchedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC), Source: docsmaker.SourceDocumentation, Summary: "First page."},
				}, nil
			},
		}

		cmd := &main.ListCmd{}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Document ID: a-id")
		assert.Contains(t, output, "Title: B Page")
		assert.Contains(t, output, "Fetched: 2026-01-01 10:00:00")
		assert.Contains(t, output, "Summary: First page.")
		assert.Less(t, bytes.Index(stdout.Bytes(), []byte("a-id")), bytes.Index(stdout.Bytes(), []byte("b-id")))
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Metadata = &mock.MetadataStore{
			LoadMetadataFn: func(context.Context) (map[string]docsmaker.MetadataEntry, error) {
				return map[string]docsmaker.MetadataEntry{}, nil
			},
		}

		cmd := &main.ListCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "No documents stored.")
	})
}
