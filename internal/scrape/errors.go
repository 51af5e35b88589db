package scrape

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced at the API boundary.
var (
	ErrJobNotFound  = errors.New("job not found")
	ErrFileNotFound = errors.New("file not found")
)

// InvalidRequestError reports a malformed start-job request. It is the
// caller's fault and never retried.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// UnreachableSeedError means crawl planning could not even begin. The job
// manager maps it to a wholesale job failure.
type UnreachableSeedError struct {
	URL string
	Err error
}

func (e *UnreachableSeedError) Error() string {
	return fmt.Sprintf("seed %s unreachable: %v", e.URL, e.Err)
}

func (e *UnreachableSeedError) Unwrap() error { return e.Err }

// FetchError reports a failed retrieval of a single candidate. StatusCode is
// zero when the request never produced a response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError reports that document bytes could not be converted to
// text. The pipeline treats it as a normal, non-fatal candidate failure.
type ExtractionError struct {
	Type   DocType
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Type, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.Type, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
