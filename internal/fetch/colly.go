// Package fetch implements HTTP retrieval using gocolly.
package fetch

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"docscraper/internal/scrape"
)

// Config controls collector behavior.
type Config struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int
}

// Client implements scrape.Fetcher using the Colly collector. Each Fetch
// clones the base collector so per-request state never leaks.
type Client struct {
	cfg           Config
	baseCollector *colly.Collector
}

// New builds a Client.
func New(cfg Config) *Client {
	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true
	if cfg.MaxBodyBytes > 0 {
		c.MaxBodySize = cfg.MaxBodyBytes
	}
	c.WithTransport(newHTTPTransport())

	return &Client{
		cfg:           cfg,
		baseCollector: c,
	}
}

// Fetch executes a single HTTP GET. Non-2xx responses and transport errors
// surface as a *scrape.FetchError.
func (c *Client) Fetch(ctx context.Context, url string) (scrape.FetchResponse, error) {
	collector := c.baseCollector.Clone()
	if c.cfg.UserAgent != "" {
		collector.UserAgent = c.cfg.UserAgent
	}
	timeout := c.cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	collector.SetRequestTimeout(timeout)

	var (
		result   scrape.FetchResponse
		fetchErr error
	)
	start := time.Now()

	collector.OnResponse(func(r *colly.Response) {
		result = scrape.FetchResponse{
			URL:         r.Request.URL.String(),
			StatusCode:  r.StatusCode,
			ContentType: r.Headers.Get("Content-Type"),
			Body:        append([]byte(nil), r.Body...),
			Duration:    time.Since(start),
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = &scrape.FetchError{URL: url, StatusCode: status, Err: err}
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return scrape.FetchResponse{}, &scrape.FetchError{URL: url, Err: ctx.Err()}
	case err := <-done:
		if fetchErr != nil {
			return scrape.FetchResponse{}, fetchErr
		}
		if err != nil {
			return scrape.FetchResponse{}, &scrape.FetchError{URL: url, Err: err}
		}
		return result, nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
