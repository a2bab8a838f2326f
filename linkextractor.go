package docsmaker

// LinkExtractor enumerates anchor targets on a fetched page. Targets are
// returned as written in the markup; the crawler resolves them against the
// page URL before filtering.
type LinkExtractor interface {
	Links(html string) []string
}
