package docsmaker

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DocumentID derives a filesystem-safe identifier from a URL. The host and
// path are normalized to a restricted character set and suffixed with a
// short hash of the full original string, so identifiers are stable across
// runs and collision-resistant but not reversible. A root path maps to
// "index" so https://example.com/ and https://example.com produce the same
// identifier.
func DocumentID(rawURL string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		name = u.Host + u.Path
		if u.Path == "" || u.Path == "/" {
			name += "index"
		}
	}

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '-' || r == '.' || r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}

	return fmt.Sprintf("%s_%08x", sb.String(), uint32(xxhash.Sum64String(rawURL)))
}
