// Package git ingests source repositories into the document corpus. A
// repository is cloned with the git CLI and walked file by file; every text
// file becomes its own single-section document, embedded and persisted
// through the same stores as crawled pages.
package git

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	docsmaker "github.com/masterdubs/docs-maker"
)

// Ingester clones repositories and converts their files into documents.
type Ingester struct {
	ReposDir   string
	Embedder   docsmaker.Embedder
	Documents  docsmaker.DocumentStore
	Embeddings docsmaker.EmbeddingStore
	Metadata   docsmaker.MetadataStore
	Logger     *slog.Logger
}

// Ingest clones the repository (or pulls if a clone already exists) and
// ingests its files. Returns the identifiers of every ingested document.
func (g *Ingester) Ingest(ctx context.Context, repoURL string) ([]string, error) {
	name := RepoName(repoURL)
	if name == "" {
		return nil, docsmaker.Errorf(docsmaker.EINVALID, "cannot derive repository name from %q", repoURL)
	}
	dir := filepath.Join(g.ReposDir, name)

	if _, err := os.Stat(dir); err == nil {
		g.logger().Info("repository exists, pulling", "repo", name)
		if err := runGit(ctx, "-C", dir, "pull"); err != nil {
			return nil, err
		}
	} else {
		g.logger().Info("cloning repository", "repo", name, "url", repoURL)
		if err := runGit(ctx, "clone", repoURL, dir); err != nil {
			return nil, err
		}
	}

	return g.IngestDir(ctx, repoURL, dir)
}

// IngestDir walks an already-cloned repository directory. Binary files
// (invalid UTF-8) are skipped silently; other per-file failures are logged
// and skipped so one bad file cannot sink the rest of the repository.
func (g *Ingester) IngestDir(ctx context.Context, repoURL, dir string) ([]string, error) {
	var ids []string

	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		data, err := os.ReadFile(p)
		if err != nil {
			g.logger().Warn("unreadable file skipped", "file", rel, "err", err)
			return nil
		}
		if !utf8.Valid(data) {
			return nil
		}

		id, err := g.ingestFile(ctx, repoURL, rel, string(data))
		if err != nil {
			g.logger().Warn("file ingestion failed", "file", rel, "err", err)
			return nil
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return ids, err
	}

	return ids, nil
}

// ingestFile turns one text file into a single-section document and
// persists it alongside its embeddings and metadata entry.
func (g *Ingester) ingestFile(ctx context.Context, repoURL, rel, content string) (string, error) {
	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	doc := &docsmaker.Document{
		URL:       repoURL + "/blob/main/" + rel,
		Title:     rel,
		Sections:  []docsmaker.Section{{Title: rel, Content: lines}},
		Summary:   fileSummary(lines),
		FetchedAt: time.Now(),
	}

	records, err := docsmaker.EmbedDocument(ctx, g.Embedder, doc)
	if err != nil {
		return "", err
	}

	id := docsmaker.DocumentID(repoURL + "/" + rel)
	if err := g.Documents.SaveDocument(ctx, id, doc); err != nil {
		return "", err
	}
	if err := g.Embeddings.SaveEmbeddings(ctx, id, records); err != nil {
		return "", err
	}
	if err := g.Metadata.UpsertMetadata(ctx, docsmaker.MetadataEntry{
		ID:        id,
		URL:       doc.URL,
		Title:     rel,
		FetchedAt: doc.FetchedAt,
		Source:    docsmaker.SourceGitHubFile,
		Summary:   doc.Summary,
	}); err != nil {
		return "", err
	}

	return id, nil
}

// fileSummary joins the first three non-empty lines of a file.
func fileSummary(lines []string) string {
	var picked []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		picked = append(picked, line)
		if len(picked) == 3 {
			break
		}
	}
	if len(picked) == 0 {
		return docsmaker.NoSummary
	}
	return strings.Join(picked, " ")
}

// RepoName extracts the repository name from a clone URL, e.g.
// https://github.com/acme/widgets.git -> widgets.
func RepoName(repoURL string) string {
	name := path.Base(strings.TrimSuffix(repoURL, "/"))
	name = strings.TrimSuffix(name, ".git")
	if name == "." || name == "/" || name == "" {
		return ""
	}
	return name
}

func (g *Ingester) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func runGit(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return docsmaker.Errorf(docsmaker.EUNAVAILABLE, "git %s: %v: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
