package results

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"docscraper/internal/scrape"
)

// Both implementations must satisfy the same contract, so every behavioral
// test runs against both.
func stores(t *testing.T) map[string]scrape.ResultStore {
	t.Helper()
	fs, err := NewFS(t.TempDir())
	require.NoError(t, err)
	return map[string]scrape.ResultStore{
		"fs":     fs,
		"memory": NewMemory(),
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			content := []byte("Title: report\n\nsome text")

			require.NoError(t, store.Put(ctx, "example.com", "report.pdf.txt", content))

			got, err := store.Get(ctx, "example.com", "report.pdf.txt")
			require.NoError(t, err)
			require.Equal(t, content, got)
		})
	}
}

func TestPutOverwrites(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Put(ctx, "example.com", "page.txt", []byte("first run")))
			require.NoError(t, store.Put(ctx, "example.com", "page.txt", []byte("second run")))

			got, err := store.Get(ctx, "example.com", "page.txt")
			require.NoError(t, err)
			require.Equal(t, []byte("second run"), got)

			names, err := store.List(ctx, "example.com")
			require.NoError(t, err)
			require.Equal(t, []string{"page.txt"}, names)
		})
	}
}

func TestListSortedAndScopedByDomain(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Put(ctx, "a.example.com", "zeta.txt", []byte("z")))
			require.NoError(t, store.Put(ctx, "a.example.com", "alpha.txt", []byte("a")))
			require.NoError(t, store.Put(ctx, "b.example.com", "other.txt", []byte("o")))

			names, err := store.List(ctx, "a.example.com")
			require.NoError(t, err)
			require.Equal(t, []string{"alpha.txt", "zeta.txt"}, names)
		})
	}
}

func TestListUnknownDomainIsEmpty(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			names, err := store.List(context.Background(), "nobody.example.com")
			require.NoError(t, err)
			require.Empty(t, names)
		})
	}
}

func TestGetMissingFile(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "example.com", "nope.txt")
			require.ErrorIs(t, err, scrape.ErrFileNotFound)
		})
	}
}

func TestPathTraversalRejected(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			err := store.Put(ctx, "..", "escape.txt", []byte("x"))
			require.ErrorIs(t, err, scrape.ErrFileNotFound)

			err = store.Put(ctx, "example.com", "../escape.txt", []byte("x"))
			require.ErrorIs(t, err, scrape.ErrFileNotFound)

			_, err = store.Get(ctx, "example.com", "sub/escape.txt")
			require.ErrorIs(t, err, scrape.ErrFileNotFound)
		})
	}
}

func TestConcurrentPuts(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const n = 50

			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					filename := fmt.Sprintf("doc-%02d.txt", i)
					require.NoError(t, store.Put(ctx, "example.com", filename, []byte(filename)))
				}(i)
			}
			wg.Wait()

			names, err := store.List(ctx, "example.com")
			require.NoError(t, err)
			require.Len(t, names, n)

			got, err := store.Get(ctx, "example.com", "doc-07.txt")
			require.NoError(t, err)
			require.Equal(t, []byte("doc-07.txt"), got)
		})
	}
}

func TestFSSkipsTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fs, err := NewFS(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, fs.Put(ctx, "example.com", "keep.txt", []byte("k")))

	// Simulate a crashed write left behind.
	leftover := filepath.Join(dir, "example.com", ".tmp-12345")
	require.NoError(t, os.WriteFile(leftover, []byte("partial"), 0o644))

	names, err := fs.List(ctx, "example.com")
	require.NoError(t, err)
	require.Equal(t, []string{"keep.txt"}, names)
}
