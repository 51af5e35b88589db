package extract

import (
	"strings"
	"unicode/utf8"

	"docscraper/internal/scrape"
)

// Text is the degenerate extractor: plain text passes through unchanged
// except for line-ending normalization.
type Text struct{}

// Extract validates encoding and normalizes CRLF line endings.
func (Text) Extract(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &scrape.ExtractionError{Type: scrape.DocTypeTxt, Reason: "content is not valid utf-8"}
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
