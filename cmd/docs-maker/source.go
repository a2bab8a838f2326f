package main

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	docsmaker "github.com/masterdubs/docs-maker"
)

// SourceKind classifies a URL for dispatch.
type SourceKind int

const (
	KindUnknown SourceKind = iota
	KindDocumentation
	KindRepository
)

// docHosts are known documentation sites that need no content sniffing.
var docHosts = map[string]struct{}{
	"docs.python.org":       {},
	"docs.github.com":       {},
	"docs.docker.com":       {},
	"developer.mozilla.org": {},
	"docs.aws.amazon.com":   {},
	"kubernetes.io":         {},
	"docs.microsoft.com":    {},
	"cloud.google.com":      {},
	"readthedocs.io":        {},
}

// docIndicators are words that suggest a page is documentation when they
// appear in its title or meta description.
var docIndicators = []string{
	"documentation", "docs", "reference", "manual", "guide", "tutorial", "api",
}

// SourceDetector classifies URLs as repositories or documentation sites.
// Classification is by host first; unknown hosts fall back to fetching the
// page and sniffing its title and description.
type SourceDetector struct {
	Fetcher docsmaker.Fetcher
	Logger  *slog.Logger
}

// Detect returns the kind of the given URL. Fetch or parse failures during
// sniffing are not fatal; the URL is reported as unknown.
func (d *SourceDetector) Detect(ctx context.Context, rawURL string) SourceKind {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return KindUnknown
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	if host == "github.com" {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segments) >= 2 && segments[0] != "" && segments[1] != "" {
			return KindRepository
		}
		return KindDocumentation
	}

	if _, ok := docHosts[host]; ok {
		return KindDocumentation
	}
	for suffix := range docHosts {
		if strings.HasSuffix(host, "."+suffix) {
			return KindDocumentation
		}
	}

	return d.sniff(ctx, rawURL)
}

// sniff fetches the page and looks for documentation indicators in the
// title and meta description.
func (d *SourceDetector) sniff(ctx context.Context, rawURL string) SourceKind {
	html, err := d.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		d.logger().Warn("source detection fetch failed", "url", rawURL, "err", err)
		return KindUnknown
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return KindUnknown
	}

	title := strings.ToLower(doc.Find("title").First().Text())
	desc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	desc = strings.ToLower(desc)

	for _, word := range docIndicators {
		if strings.Contains(title, word) || strings.Contains(desc, word) {
			return KindDocumentation
		}
	}
	return KindUnknown
}

func (d *SourceDetector) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
