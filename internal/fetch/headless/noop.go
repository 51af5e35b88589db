package headless

import (
	"context"
	"errors"

	"docscraper/internal/scrape"
)

// ErrDisabled is returned by the noop renderer; callers fall back to a
// plain fetch.
var ErrDisabled = errors.New("headless rendering disabled")

// Noop is the renderer used when no browser is configured.
type Noop struct{}

// NewNoop constructs a Noop renderer.
func NewNoop() *Noop {
	return &Noop{}
}

// Render always fails with ErrDisabled.
func (Noop) Render(_ context.Context, _ string) (scrape.FetchResponse, error) {
	return scrape.FetchResponse{}, ErrDisabled
}
