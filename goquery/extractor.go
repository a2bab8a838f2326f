package goquery

import docsmaker "github.com/masterdubs/docs-maker"

// Ensure LinkExtractor implements docsmaker.LinkExtractor at compile time.
var _ docsmaker.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor adapts Links to the docsmaker.LinkExtractor interface.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// Links returns every anchor href in the page in document order.
func (e *LinkExtractor) Links(html string) []string {
	return Links(html)
}
