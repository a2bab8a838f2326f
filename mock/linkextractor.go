package mock

import docsmaker "github.com/masterdubs/docs-maker"

var _ docsmaker.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docsmaker.LinkExtractor.
type LinkExtractor struct {
	LinksFn func(html string) []string
}

func (e *LinkExtractor) Links(html string) []string {
	return e.LinksFn(html)
}
