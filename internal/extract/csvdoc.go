package extract

import (
	"bytes"
	"encoding/csv"
	"strings"

	"docscraper/internal/scrape"
)

// CSV renders comma-separated values as tab-aligned rows.
type CSV struct{}

// Extract parses the full document; ragged rows are tolerated.
func (CSV) Extract(data []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return "", &scrape.ExtractionError{Type: scrape.DocTypeCSV, Reason: "parse csv", Err: err}
	}

	var sb strings.Builder
	for i, record := range records {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(record, "\t"))
	}
	return sb.String(), nil
}
