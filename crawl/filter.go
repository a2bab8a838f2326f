package crawl

import (
	"net/url"
	"strings"
)

// skipSegments are path segments that only ever lead to static assets.
var skipSegments = []string{"/static/", "/assets/", "/images/", "/css/", "/js/"}

// skipExtensions are file types that carry no crawlable text.
var skipExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".css", ".js", ".ico"}

// Followable reports whether a discovered href is worth following from the
// origin page. It is a pure predicate: visited-set membership is the crawl
// loop's concern. The href is resolved against the origin, so relative
// links that resolve cross-host (open-redirect style) are rejected like any
// other foreign URL. Returns the resolved URL when followable.
func Followable(href string, origin *url.URL) (string, bool) {
	if href == "" || origin == nil {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := origin.ResolveReference(ref)

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	if resolved.Host != origin.Host {
		return "", false
	}
	if resolved.Fragment != "" || resolved.ForceQuery || resolved.RawQuery != "" {
		return "", false
	}

	path := resolved.Path
	for _, segment := range skipSegments {
		if strings.Contains(path, segment) {
			return "", false
		}
	}

	lower := strings.ToLower(path)
	for _, ext := range skipExtensions {
		if strings.HasSuffix(lower, ext) {
			return "", false
		}
	}

	return resolved.String(), true
}
