package extract

import (
	"archive/zip"
	"bytes"
	"sort"
	"strings"

	"docscraper/internal/scrape"
)

// PPTX extracts text from presentation slides. Slides are XML parts under
// ppt/slides/ inside the zip container; a:t runs hold the visible text.
type PPTX struct{}

// Extract concatenates slide text in slide-name order for determinism.
func (PPTX) Extract(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &scrape.ExtractionError{Type: scrape.DocTypePPTX, Reason: "open container", Err: err}
	}

	var slides []*zip.File
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f)
		}
	}
	if len(slides) == 0 {
		return "", &scrape.ExtractionError{Type: scrape.DocTypePPTX, Reason: "no slides found"}
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].Name < slides[j].Name })

	var sb strings.Builder
	for _, slide := range slides {
		rc, err := slide.Open()
		if err != nil {
			return "", &scrape.ExtractionError{Type: scrape.DocTypePPTX, Reason: "open slide", Err: err}
		}
		text, err := collectRunText(rc, "p")
		rc.Close()
		if err != nil {
			return "", &scrape.ExtractionError{Type: scrape.DocTypePPTX, Reason: "parse slide", Err: err}
		}
		if text != "" {
			sb.WriteString(text)
			sb.WriteByte('\n')
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
