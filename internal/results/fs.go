// Package results persists extracted document text, keyed by domain.
package results

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"docscraper/internal/scrape"
)

// FS stores results on the local filesystem under baseDir/<domain>/<file>.
type FS struct {
	baseDir string
}

// NewFS creates the base directory and verifies it is writable.
func NewFS(baseDir string) (*FS, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	probe, err := os.CreateTemp(baseDir, ".probe-*")
	if err != nil {
		return nil, fmt.Errorf("results dir not writable: %w", err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return &FS{baseDir: baseDir}, nil
}

// validComponent rejects names that could escape the base directory.
func validComponent(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return true
}

// Put writes content atomically: temp file in the target directory, then
// rename. Re-running a job therefore overwrites rather than duplicates.
func (s *FS) Put(ctx context.Context, domain, filename string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validComponent(domain) || !validComponent(filename) {
		return fmt.Errorf("invalid result path %q/%q: %w", domain, filename, scrape.ErrFileNotFound)
	}

	dir := filepath.Join(s.baseDir, domain)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create domain dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close result: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, filename)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish result: %w", err)
	}
	return nil
}

// List returns the filenames stored for a domain, sorted. A domain with no
// results yields an empty list, not an error.
func (s *FS) List(ctx context.Context, domain string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validComponent(domain) {
		return nil, fmt.Errorf("invalid domain %q: %w", domain, scrape.ErrFileNotFound)
	}

	entries, err := os.ReadDir(filepath.Join(s.baseDir, domain))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Get returns the stored content for a single file.
func (s *FS) Get(ctx context.Context, domain, filename string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validComponent(domain) || !validComponent(filename) {
		return nil, fmt.Errorf("invalid result path %q/%q: %w", domain, filename, scrape.ErrFileNotFound)
	}

	data, err := os.ReadFile(filepath.Join(s.baseDir, domain, filename))
	if os.IsNotExist(err) {
		return nil, scrape.ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}
	return data, nil
}
