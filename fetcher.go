package docsmaker

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a GET against the URL and returns the response body.
	// The context controls timeout and cancellation. A non-2xx status is
	// reported as an EUNAVAILABLE error.
	Fetch(ctx context.Context, url string) (html string, err error)
}
