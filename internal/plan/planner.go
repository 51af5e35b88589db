// Package plan discovers fetch candidates from a job's seed page.
package plan

import (
	"bytes"
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"docscraper/internal/scrape"
)

// Planner fetches the seed page and enumerates candidates: the page's own
// text (when txt is requested) plus document links whose extension matches
// the requested set. Discovery is single-level; links found on the seed page
// are never followed further.
type Planner struct {
	fetcher  scrape.Fetcher
	renderer scrape.Renderer
	logger   *zap.Logger
}

// New constructs a Planner. renderer may be a noop; logger may be nil.
func New(fetcher scrape.Fetcher, renderer scrape.Renderer, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		fetcher:  fetcher,
		renderer: renderer,
		logger:   logger,
	}
}

// Plan fetches the seed page and returns the candidate list. A seed that
// cannot be fetched at all yields *scrape.UnreachableSeedError.
func (p *Planner) Plan(
	ctx context.Context,
	seedURL string,
	useJS bool,
	docTypes []scrape.DocType,
) ([]scrape.Candidate, error) {
	resp, err := p.fetchSeed(ctx, seedURL, useJS)
	if err != nil {
		return nil, &scrape.UnreachableSeedError{URL: seedURL, Err: err}
	}

	wanted := make(map[scrape.DocType]bool, len(docTypes))
	for _, dt := range docTypes {
		wanted[dt] = true
	}

	var candidates []scrape.Candidate
	if wanted[scrape.DocTypeTxt] {
		candidates = append(candidates, scrape.Candidate{
			URL:  seedURL,
			Type: scrape.DocTypePage,
			Body: resp.Body,
		})
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		p.logger.Warn("seed page not parseable, no links discovered",
			zap.String("url", seedURL), zap.Error(err))
		return candidates, nil
	}

	base, err := url.Parse(seedURL)
	if err != nil {
		return candidates, nil
	}

	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		abs := resolveLink(base, href)
		if abs == "" {
			return
		}
		docType, ok := classifyLink(abs, wanted)
		if !ok {
			return
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		candidates = append(candidates, scrape.Candidate{URL: abs, Type: docType})
	})

	p.logger.Debug("planned candidates",
		zap.String("seed", seedURL), zap.Int("count", len(candidates)))
	return candidates, nil
}

func (p *Planner) fetchSeed(ctx context.Context, seedURL string, useJS bool) (scrape.FetchResponse, error) {
	if useJS && p.renderer != nil {
		resp, err := p.renderer.Render(ctx, seedURL)
		if err == nil {
			return resp, nil
		}
		p.logger.Debug("headless render failed, falling back to plain fetch",
			zap.String("url", seedURL), zap.Error(err))
	}
	return p.fetcher.Fetch(ctx, seedURL)
}

func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	abs.Fragment = ""
	return abs.String()
}

func classifyLink(link string, wanted map[scrape.DocType]bool) (scrape.DocType, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), ".")
	if ext == "" {
		return "", false
	}
	docType, ok := scrape.ParseDocType(ext)
	if !ok || !wanted[docType] {
		return "", false
	}
	return docType, true
}
