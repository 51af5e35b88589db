// Package scrape defines core types shared across subsystems.
package scrape

import "time"

// DocType identifies a supported document format.
type DocType string

// Document types a job may request. DocTypePage is internal: it marks the
// seed page's own visible text and is never requested directly.
const (
	DocTypeDocx DocType = "docx"
	DocTypePDF  DocType = "pdf"
	DocTypeCSV  DocType = "csv"
	DocTypeXLSX DocType = "xlsx"
	DocTypePPTX DocType = "pptx"
	DocTypeTxt  DocType = "txt"
	DocTypePage DocType = "page"
)

// SupportedDocTypes returns the set a request may choose from.
func SupportedDocTypes() []DocType {
	return []DocType{DocTypeDocx, DocTypePDF, DocTypeCSV, DocTypeXLSX, DocTypePPTX, DocTypeTxt}
}

// ParseDocType maps a request string to a DocType. Legacy "xls" links are
// treated as xlsx.
func ParseDocType(s string) (DocType, bool) {
	switch DocType(s) {
	case DocTypeDocx, DocTypePDF, DocTypeCSV, DocTypeXLSX, DocTypePPTX, DocTypeTxt:
		return DocType(s), true
	case "xls":
		return DocTypeXLSX, true
	default:
		return "", false
	}
}

// JobStatus represents the lifecycle state of a scrape job.
type JobStatus string

// Job status values visible through the status endpoint.
const (
	JobStatusPending JobStatus = "pending"
	JobStatusRunning JobStatus = "running"
	JobStatusDone    JobStatus = "done"
	JobStatusFailed  JobStatus = "failed"
)

// Terminal reports whether the status is final.
func (s JobStatus) Terminal() bool {
	return s == JobStatusDone || s == JobStatusFailed
}

// Job is the metadata kept for each submitted scrape request. The document
// type set is fixed at creation and never mutated afterwards.
type Job struct {
	ID       string    `json:"id"`
	SeedURL  string    `json:"seed_url"`
	Domain   string    `json:"domain"`
	DocTypes []DocType `json:"doc_types"`
	UseJS    bool      `json:"use_js"`
	Status   JobStatus `json:"status"`
	Progress int       `json:"progress"`
	Created  time.Time `json:"created_at"`
}

// Candidate is a single fetchable unit considered by a job: the seed page
// itself or a document link discovered on it. Body is pre-populated for the
// seed-page candidate so the page is not fetched twice.
type Candidate struct {
	URL  string
	Type DocType
	Body []byte
}

// FetchResponse is the result returned by a Fetcher or Renderer.
type FetchResponse struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
	Duration    time.Duration
}
