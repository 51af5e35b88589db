package extract

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	"docscraper/internal/scrape"
)

// XLSX extracts cell values from a workbook, sheet by sheet.
type XLSX struct{}

// Extract renders every sheet as tab-separated rows.
func (XLSX) Extract(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", &scrape.ExtractionError{Type: scrape.DocTypeXLSX, Reason: "open workbook", Err: err}
	}
	defer f.Close()

	var sb strings.Builder
	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", &scrape.ExtractionError{Type: scrape.DocTypeXLSX, Reason: "read sheet " + sheet, Err: err}
		}
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, row := range rows {
			if j > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(strings.Join(row, "\t"))
		}
	}
	return sb.String(), nil
}
