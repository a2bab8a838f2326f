package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Links returns the href target of every anchor in the page, in document
// order. Targets are returned as written (possibly relative); resolution
// and filtering are the crawler's concern. Unparseable HTML yields no
// links.
func Links(html string) []string {
	page, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var hrefs []string
	page.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}
