package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	docsmaker "github.com/masterdubs/docs-maker"
	"github.com/masterdubs/docs-maker/crawl"
	"github.com/masterdubs/docs-maker/fs"
	"github.com/masterdubs/docs-maker/gemini"
	"github.com/masterdubs/docs-maker/git"
	"github.com/masterdubs/docs-maker/goquery"
	"github.com/masterdubs/docs-maker/htmltomarkdown"
	dochttp "github.com/masterdubs/docs-maker/http"
	"github.com/masterdubs/docs-maker/openai"
	"github.com/masterdubs/docs-maker/search"
	docslog "github.com/masterdubs/docs-maker/slog"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Storage directory. Overrides the --dir flag when set before Run(),
	// which end-to-end tests rely on.
	BaseDir string

	// File store backing all persistence.
	Store *fs.Store
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Load API keys from .env if present.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docs-maker"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docs-maker --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if m.BaseDir == "" {
		m.BaseDir = cli.Dir
	}
	m.Store = fs.NewStore(m.BaseDir)
	if err := m.Store.Open(); err != nil {
		return fmt.Errorf("failed to open storage at %q: %w", m.BaseDir, err)
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	fetcher := docslog.NewLoggingFetcher(dochttp.NewFetcher(), logger)

	deps.Metadata = m.Store
	deps.Detector = &SourceDetector{Fetcher: fetcher, Logger: logger}

	// list reads the catalog only; skip embedder setup so it works offline.
	if cmd == "list" {
		return kongCtx.Run(deps)
	}

	embedder, err := newEmbedder(ctx, cli.Embedder, stderr)
	if err != nil {
		return err
	}
	embedder = docslog.NewLoggingEmbedder(embedder, logger)

	crawler := &crawl.Crawler{
		Fetcher:    fetcher,
		Structurer: goquery.NewStructurer(htmltomarkdown.NewConverter()),
		Embedder:   embedder,
		Links:      goquery.NewLinkExtractor(),
		Documents:  m.Store,
		Embeddings: m.Store,
		Metadata:   m.Store,
		Logger:     logger,
	}
	deps.Crawler = crawler
	deps.Ingester = &git.Ingester{
		ReposDir:   m.Store.RepoDir(),
		Embedder:   embedder,
		Documents:  m.Store,
		Embeddings: m.Store,
		Metadata:   m.Store,
		Logger:     logger,
	}
	deps.Searcher = search.NewSearcher(embedder, m.Store, m.Store)

	// Known pages are skipped on process; refresh manages the set itself.
	if cmd == "process" {
		if err := crawler.SeedVisited(ctx); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// newEmbedder builds the embedding backend selected on the command line.
func newEmbedder(ctx context.Context, backend string, stderr io.Writer) (docsmaker.Embedder, error) {
	switch backend {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set")
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return openai.NewEmbedder(apiKey), nil

	default:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewEmbedder(client), nil
	}
}
