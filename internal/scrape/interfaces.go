package scrape

import (
	"context"
	"time"
)

// Fetcher retrieves a URL and returns the body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchResponse, error)
}

// Renderer fetches a page through a JavaScript-capable browser.
type Renderer interface {
	Render(ctx context.Context, url string) (FetchResponse, error)
}

// Planner enumerates the candidates for a job: the seed page (when txt is
// requested) plus matching document links discovered on it.
type Planner interface {
	Plan(ctx context.Context, seedURL string, useJS bool, docTypes []DocType) ([]Candidate, error)
}

// ResultStore holds extracted documents keyed by domain and filename.
// Put overwrites: the last write for a given filename wins.
type ResultStore interface {
	Put(ctx context.Context, domain, filename string, content []byte) error
	List(ctx context.Context, domain string) ([]string, error)
	Get(ctx context.Context, domain, filename string) ([]byte, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces job IDs.
type IDGenerator interface {
	NewID() (string, error)
}
