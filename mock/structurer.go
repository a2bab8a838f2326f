package mock

import docsmaker "github.com/masterdubs/docs-maker"

var _ docsmaker.Structurer = (*Structurer)(nil)

// Structurer is a mock implementation of docsmaker.Structurer.
type Structurer struct {
	StructureFn func(html string, sourceURL string) (*docsmaker.Document, error)
}

func (s *Structurer) Structure(html string, sourceURL string) (*docsmaker.Document, error) {
	return s.StructureFn(html, sourceURL)
}

var _ docsmaker.Converter = (*Converter)(nil)

// Converter is a mock implementation of docsmaker.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
