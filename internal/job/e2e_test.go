package job

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docscraper/internal/extract"
	"docscraper/internal/fetch"
	"docscraper/internal/fetch/headless"
	"docscraper/internal/plan"
	"docscraper/internal/results"
	"docscraper/internal/scrape"
)

// Pipeline tests exercising the real planner and fetcher against a local
// HTTP server.

func newPipeline(t *testing.T) (*Manager, *results.Memory) {
	t.Helper()
	fetcher := fetch.New(fetch.Config{
		UserAgent: "docscraper-test",
		Timeout:   5 * time.Second,
	})
	planner := plan.New(fetcher, headless.NewNoop(), zap.NewNop())
	store := results.NewMemory()
	mgr := NewManager(
		context.Background(),
		planner,
		fetcher,
		extract.NewRegistry(),
		store,
		fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		&seqIDGen{},
		zap.NewNop(),
		Config{Concurrency: 2},
	)
	return mgr, store
}

func serverDomain(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return u.Hostname()
}

func TestPipelineSeedPageText(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>Archive</title></head>`+
			`<body><p>Historical records live here.</p></body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mgr, store := newPipeline(t)
	ctx := context.Background()

	id, err := mgr.CreateJob(ctx, srv.URL, false, []scrape.DocType{scrape.DocTypeTxt})
	require.NoError(t, err)
	require.Equal(t, scrape.JobStatusDone, waitTerminal(t, mgr, id))

	domain := serverDomain(t, srv)
	names, err := store.List(ctx, domain)
	require.NoError(t, err)
	require.Len(t, names, 1)

	content, err := store.Get(ctx, domain, names[0])
	require.NoError(t, err)
	require.Contains(t, string(content), "URL: "+srv.URL)
	require.Contains(t, string(content), "Title: Archive")
	require.Contains(t, string(content), "Historical records live here.")
}

func TestPipelineUnreachableSeed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	seedURL := srv.URL
	srv.Close() // connection refused from here on

	mgr, store := newPipeline(t)
	ctx := context.Background()

	id, err := mgr.CreateJob(ctx, seedURL, false, []scrape.DocType{scrape.DocTypeTxt})
	require.NoError(t, err)
	require.Equal(t, scrape.JobStatusFailed, waitTerminal(t, mgr, id))

	u, err := url.Parse(seedURL)
	require.NoError(t, err)
	names, err := store.List(ctx, u.Hostname())
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestPipelineDocumentLinks(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>`+
			`<a href="/reports/q1.csv">Q1</a>`+
			`<a href="/reports/q2.csv">Q2</a>`+
			`<a href="/reports/missing.csv">Gone</a>`+
			`<a href="/about.html">About</a>`+
			`</body></html>`)
	})
	mux.HandleFunc("/reports/q1.csv", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, "quarter,revenue\nq1,100\n")
	})
	mux.HandleFunc("/reports/q2.csv", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, "quarter,revenue\nq2,120\n")
	})
	mux.HandleFunc("/reports/missing.csv", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mgr, store := newPipeline(t)
	ctx := context.Background()

	id, err := mgr.CreateJob(ctx, srv.URL, false, []scrape.DocType{scrape.DocTypeCSV})
	require.NoError(t, err)
	require.Equal(t, scrape.JobStatusDone, waitTerminal(t, mgr, id))

	_, progress, err := mgr.GetStatus(id)
	require.NoError(t, err)
	require.Equal(t, 100, progress)

	domain := serverDomain(t, srv)
	names, err := store.List(ctx, domain)
	require.NoError(t, err)
	require.Len(t, names, 2)

	for _, name := range names {
		content, err := store.Get(ctx, domain, name)
		require.NoError(t, err)
		require.Contains(t, string(content), "quarter\trevenue")
	}
}
