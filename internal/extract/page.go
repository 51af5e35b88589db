package extract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"docscraper/internal/scrape"
)

// Page extracts the visible text of an HTML page. Output starts with a
// Title header line so result files are self-describing.
type Page struct{}

// Extract strips script/style/chrome elements and folds whitespace.
func (Page) Extract(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &scrape.ExtractionError{Type: scrape.DocTypePage, Reason: "body is not valid utf-8"}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &scrape.ExtractionError{Type: scrape.DocTypePage, Reason: "parse html", Err: err}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script, style, nav, header, footer, noscript, iframe").Remove()
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")

	return fmt.Sprintf("Title: %s\n\n%s", title, text), nil
}
