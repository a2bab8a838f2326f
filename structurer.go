package docsmaker

// NoSummary is recorded when no summary lines could be extracted from a
// page, and also when structuring degraded on unparseable input.
const NoSummary = "No summary available"

// NoTitle is recorded for pages without a <title> element.
const NoTitle = "No title"

// Structurer turns raw HTML into a structured document. Implementations
// prioritize availability over fidelity: malformed or empty HTML yields a
// document with no sections and the NoSummary marker rather than an error.
type Structurer interface {
	Structure(html string, sourceURL string) (*Document, error)
}

// Converter transforms an HTML fragment into markdown-flavored text with
// links preserved as text, images dropped, and table structure kept.
type Converter interface {
	Convert(html string) (string, error)
}
