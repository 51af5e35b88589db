package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"docscraper/internal/scrape"
)

// Docx extracts paragraph text from a Word document. A docx file is a zip
// container; the text lives in w:t runs inside word/document.xml.
type Docx struct{}

// Extract walks the document XML, joining runs and breaking at paragraphs.
func (Docx) Extract(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &scrape.ExtractionError{Type: scrape.DocTypeDocx, Reason: "open container", Err: err}
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", &scrape.ExtractionError{Type: scrape.DocTypeDocx, Reason: "missing word/document.xml"}
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", &scrape.ExtractionError{Type: scrape.DocTypeDocx, Reason: "open document.xml", Err: err}
	}
	defer rc.Close()

	text, err := collectRunText(rc, "p")
	if err != nil {
		return "", &scrape.ExtractionError{Type: scrape.DocTypeDocx, Reason: "parse document.xml", Err: err}
	}
	return text, nil
}

// collectRunText scans OOXML tokens, accumulating character data inside
// <t> runs and emitting a newline at each closing breakElement.
func collectRunText(r io.Reader, breakElement string) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inRun := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inRun = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inRun = false
			case breakElement:
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inRun {
				sb.Write(el)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
