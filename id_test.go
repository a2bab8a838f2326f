package docsmaker_test

import (
	"strings"
	"testing"

	docsmaker "github.com/masterdubs/docs-maker"
	"github.com/stretchr/testify/assert"
)

func TestDocumentID(t *testing.T) {
	t.Parallel()

	t.Run("stable across calls", func(t *testing.T) {
		t.Parallel()

		a := docsmaker.DocumentID("https://docs.example.com/guide")
		b := docsmaker.DocumentID("https://docs.example.com/guide")

		assert.Equal(t, a, b)
	})

	t.Run("distinct for distinct URLs", func(t *testing.T) {
		t.Parallel()

		a := docsmaker.DocumentID("https://docs.example.com/guide")
		b := docsmaker.DocumentID("https://docs.example.com/guide/intro")

		assert.NotEqual(t, a, b)
	})

	t.Run("root path maps to index", func(t *testing.T) {
		t.Parallel()

		id := docsmaker.DocumentID("https://docs.example.com/")

		assert.True(t, strings.HasPrefix(id, "docs.example.comindex_"), id)
	})

	t.Run("filesystem-safe output", func(t *testing.T) {
		t.Parallel()

		id := docsmaker.DocumentID("https://docs.example.com/a b/c%20d")

		for _, r := range id {
			ok := r == '-' || r == '.' || r == '_' ||
				(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
			assert.True(t, ok, "unexpected rune %q in %q", r, id)
		}
	})

	t.Run("query strings change the hash suffix", func(t *testing.T) {
		t.Parallel()

		a := docsmaker.DocumentID("https://docs.example.com/guide?v=1")
		b := docsmaker.DocumentID("https://docs.example.com/guide?v=2")

		assert.NotEqual(t, a, b)
	})
}
