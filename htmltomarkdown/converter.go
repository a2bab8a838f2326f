// Package htmltomarkdown converts HTML fragments into markdown-flavored
// text whose heading lines drive the section parser.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	docsmaker "github.com/masterdubs/docs-maker"
)

// Ensure Converter implements docsmaker.Converter at compile time.
var _ docsmaker.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Table structure is preserved via the
// table plugin; link text survives conversion. Images are expected to be
// stripped by the caller before conversion.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into markdown text. Empty input yields
// empty output rather than an error so that structuring can degrade to an
// empty document.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
