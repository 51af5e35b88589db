package results

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"docscraper/internal/scrape"
)

// Memory is an in-process ResultStore used in tests and single-shot runs.
type Memory struct {
	mu      sync.RWMutex
	domains map[string]map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{domains: make(map[string]map[string][]byte)}
}

func (s *Memory) Put(ctx context.Context, domain, filename string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validComponent(domain) || !validComponent(filename) {
		return fmt.Errorf("invalid result path %q/%q: %w", domain, filename, scrape.ErrFileNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	files, ok := s.domains[domain]
	if !ok {
		files = make(map[string][]byte)
		s.domains[domain] = files
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	files[filename] = cp
	return nil
}

func (s *Memory) List(ctx context.Context, domain string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for name := range s.domains[domain] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Memory) Get(ctx context.Context, domain, filename string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.domains[domain][filename]
	if !ok {
		return nil, scrape.ErrFileNotFound
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp, nil
}
