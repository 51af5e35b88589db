package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"docscraper/internal/scrape"
)

// PDF extracts the text content of a PDF document.
type PDF struct{}

// Extract reads all pages' plain text. The underlying parser panics on some
// malformed cross-reference tables, so failures are recovered into a typed
// extraction error.
func (PDF) Extract(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = &scrape.ExtractionError{
				Type:   scrape.DocTypePDF,
				Reason: "malformed pdf",
				Err:    fmt.Errorf("parser panic: %v", rec),
			}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &scrape.ExtractionError{Type: scrape.DocTypePDF, Reason: "open pdf", Err: err}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &scrape.ExtractionError{Type: scrape.DocTypePDF, Reason: "read text", Err: err}
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", &scrape.ExtractionError{Type: scrape.DocTypePDF, Reason: "read text", Err: err}
	}
	return buf.String(), nil
}
