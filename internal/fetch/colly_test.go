package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"docscraper/internal/scrape"
)

func TestClient_Fetch_Succeeds(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	client := New(Config{Timeout: 5 * time.Second})
	resp, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/html; charset=utf-8", resp.ContentType)
	require.Contains(t, string(resp.Body), "hello")
}

func TestClient_Fetch_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := New(Config{Timeout: 5 * time.Second})
	_, err := client.Fetch(context.Background(), srv.URL+"/missing.pdf")
	require.Error(t, err)

	var fe *scrape.FetchError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, http.StatusNotFound, fe.StatusCode)
}

func TestClient_Fetch_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	client := New(Config{Timeout: 100 * time.Millisecond})
	_, err := client.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fe *scrape.FetchError
	require.True(t, errors.As(err, &fe))
}

func TestClient_Fetch_ContextCanceled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	client := New(Config{Timeout: 10 * time.Second})
	_, err := client.Fetch(ctx, srv.URL)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_Fetch_BinaryBody(t *testing.T) {
	t.Parallel()

	payload := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0x01}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	client := New(Config{Timeout: 5 * time.Second})
	resp, err := client.Fetch(context.Background(), srv.URL+"/doc.pdf")
	require.NoError(t, err)
	require.Equal(t, payload, resp.Body)
	require.Equal(t, "application/pdf", resp.ContentType)
}
