// Package extract converts fetched document bytes into plain text.
//
// One extractor exists per supported document type. Extractors are pure:
// identical input bytes always produce identical output, and malformed
// input yields a typed *scrape.ExtractionError rather than a panic.
package extract

import "docscraper/internal/scrape"

// Extractor converts raw document bytes into text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// Registry dispatches extraction by document type. Dispatch is decided once
// at candidate-classification time and never reconsidered.
type Registry struct {
	byType map[scrape.DocType]Extractor
}

// NewRegistry builds a Registry covering every supported document type.
func NewRegistry() *Registry {
	return &Registry{
		byType: map[scrape.DocType]Extractor{
			scrape.DocTypeDocx: Docx{},
			scrape.DocTypePDF:  PDF{},
			scrape.DocTypeCSV:  CSV{},
			scrape.DocTypeXLSX: XLSX{},
			scrape.DocTypePPTX: PPTX{},
			scrape.DocTypeTxt:  Text{},
			scrape.DocTypePage: Page{},
		},
	}
}

// ForType returns the extractor registered for the given type.
func (r *Registry) ForType(t scrape.DocType) (Extractor, bool) {
	ex, ok := r.byType[t]
	return ex, ok
}
