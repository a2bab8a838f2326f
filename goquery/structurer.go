// Package goquery provides HTML processing implementations backed by
// PuerkitoBio/goquery: main-content structuring and anchor extraction.
package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	docsmaker "github.com/masterdubs/docs-maker"
)

// containerSelectors is the ordered main-content preference. The first
// selector with a match wins; when none match the whole page is used.
var containerSelectors = []string{
	"div.document",
	"main",
	"article",
	"div.content",
}

// Ensure Structurer implements docsmaker.Structurer at compile time.
var _ docsmaker.Structurer = (*Structurer)(nil)

// Structurer turns raw HTML into a structured document. It selects the
// main-content container, strips navigation chrome and images, converts the
// remainder to markdown text, and parses the line stream into a two-level
// section tree with a short summary.
type Structurer struct {
	converter docsmaker.Converter
	now       func() time.Time
}

// Option configures a Structurer.
type Option func(*Structurer)

// WithClock overrides the time source used for Document.FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Structurer) {
		s.now = now
	}
}

// NewStructurer creates a Structurer that converts content HTML with the
// given converter.
func NewStructurer(converter docsmaker.Converter, opts ...Option) *Structurer {
	s := &Structurer{
		converter: converter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Structure parses raw HTML into a document. Malformed or empty input never
// fails: it degrades to a document with no sections and the NoSummary
// marker, since an incomplete corpus beats an aborted crawl.
func (s *Structurer) Structure(html string, sourceURL string) (*docsmaker.Document, error) {
	doc := &docsmaker.Document{
		URL:       sourceURL,
		Title:     docsmaker.NoTitle,
		Summary:   docsmaker.NoSummary,
		FetchedAt: s.now(),
	}

	page, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return doc, nil
	}

	if title := strings.TrimSpace(page.Find("title").First().Text()); title != "" {
		doc.Title = title
	}

	container := page.Selection
	for _, sel := range containerSelectors {
		if found := page.Find(sel); found.Length() > 0 {
			container = found.First()
			break
		}
	}

	// Navigation chrome and images never contribute content.
	container.Find("nav").Remove()
	container.Find(".nav, .navigation, .headerlink").Remove()
	container.Find("img").Remove()

	fragment, err := goquery.OuterHtml(container)
	if err != nil {
		return doc, nil
	}

	text, err := s.converter.Convert(fragment)
	if err != nil {
		return doc, nil
	}

	doc.Sections = parseSections(contentLines(text))
	if summary := summarize(doc.Sections); summary != "" {
		doc.Summary = summary
	}

	return doc, nil
}

// contentLines splits markdown text into trimmed lines, dropping blanks and
// navigation artifacts (lines opening with a bracket, typically bare links).
func contentLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseSections runs the two-level heading state machine over the line
// stream. A "# " line opens a section, a "## " line opens a subsection
// under the current section, and any other line attaches to the open
// subsection if there is one, otherwise to the section itself. Lines seen
// before the first heading attach to an implicit anonymous section.
func parseSections(lines []string) []docsmaker.Section {
	var sections []docsmaker.Section
	current := docsmaker.Section{}

	flush := func() {
		if !current.Empty() {
			sections = append(sections, current)
		}
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "# "):
			flush()
			current = docsmaker.Section{Title: strings.TrimSpace(line[2:])}
		case strings.HasPrefix(line, "## "):
			current.Subsections = append(current.Subsections, docsmaker.Subsection{
				Title: strings.TrimSpace(line[3:]),
			})
		default:
			if n := len(current.Subsections); n > 0 {
				current.Subsections[n-1].Content = append(current.Subsections[n-1].Content, line)
			} else {
				current.Content = append(current.Content, line)
			}
		}
	}
	flush()

	return sections
}

// summaryLimit caps the number of lines joined into a document summary.
const summaryLimit = 3

// summarize walks sections in order collecting up to summaryLimit content
// lines that are not table, list, or bracket noise, topping up from a
// section's subsections when the section itself falls short. Returns ""
// when no usable line exists.
func summarize(sections []docsmaker.Section) string {
	var picked []string

	take := func(lines []string) {
		for _, line := range lines {
			if len(picked) >= summaryLimit {
				return
			}
			if strings.HasPrefix(line, "[") || strings.HasPrefix(line, "|") || strings.HasPrefix(line, "-") {
				continue
			}
			picked = append(picked, line)
		}
	}

	for _, section := range sections {
		take(section.Content)
		if len(picked) >= summaryLimit {
			break
		}
		for _, sub := range section.Subsections {
			take(sub.Content)
			if len(picked) >= summaryLimit {
				break
			}
		}
		if len(picked) >= summaryLimit {
			break
		}
	}

	return strings.Join(picked, " ")
}
