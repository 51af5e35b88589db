// Package job owns the scrape-job lifecycle: creation, asynchronous
// execution, and status reporting.
package job

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"docscraper/internal/extract"
	"docscraper/internal/metrics"
	"docscraper/internal/scrape"
)

// Config carries the manager's tunables.
type Config struct {
	// Concurrency bounds how many candidates a single job fetches in
	// parallel. Zero or negative means 1.
	Concurrency int
}

// state pairs a job with its internal progress counters. Counters are only
// touched under the manager mutex.
type state struct {
	job       scrape.Job
	total     int
	completed int
	succeeded int
}

// Manager runs scrape jobs in the background. Jobs are kept in memory for
// the lifetime of the process; restarting the service forgets them, but the
// result files they produced survive in the store.
type Manager struct {
	mu   sync.RWMutex
	jobs map[string]*state

	planner    scrape.Planner
	fetcher    scrape.Fetcher
	extractors *extract.Registry
	store      scrape.ResultStore
	clock      scrape.Clock
	idGen      scrape.IDGenerator
	logger     *zap.Logger
	cfg        Config

	baseCtx context.Context
	wg      sync.WaitGroup
}

// NewManager wires the pipeline. ctx bounds all background work: cancel it
// and running jobs wind down.
func NewManager(
	ctx context.Context,
	planner scrape.Planner,
	fetcher scrape.Fetcher,
	extractors *extract.Registry,
	store scrape.ResultStore,
	clock scrape.Clock,
	idGen scrape.IDGenerator,
	logger *zap.Logger,
	cfg Config,
) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Manager{
		jobs:       make(map[string]*state),
		planner:    planner,
		fetcher:    fetcher,
		extractors: extractors,
		store:      store,
		clock:      clock,
		idGen:      idGen,
		logger:     logger,
		cfg:        cfg,
		baseCtx:    ctx,
	}
}

// CreateJob validates the request, registers a pending job, and starts its
// pipeline in the background. It returns as soon as the job is registered.
func (m *Manager) CreateJob(
	ctx context.Context,
	seedURL string,
	useJS bool,
	docTypes []scrape.DocType,
) (string, error) {
	domain, err := scrape.Domain(seedURL)
	if err != nil {
		return "", &scrape.InvalidRequestError{Reason: fmt.Sprintf("seed url: %v", err)}
	}

	types := dedupeDocTypes(docTypes)
	if len(types) == 0 {
		return "", &scrape.InvalidRequestError{Reason: "no document types requested"}
	}
	for _, dt := range types {
		if _, ok := scrape.ParseDocType(string(dt)); !ok {
			return "", &scrape.InvalidRequestError{Reason: fmt.Sprintf("unsupported document type %q", dt)}
		}
	}

	id, err := m.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate job id: %w", err)
	}

	st := &state{
		job: scrape.Job{
			ID:       id,
			SeedURL:  seedURL,
			Domain:   domain,
			DocTypes: types,
			UseJS:    useJS,
			Status:   scrape.JobStatusPending,
			Created:  m.clock.Now(),
		},
	}

	m.mu.Lock()
	m.jobs[id] = st
	m.mu.Unlock()

	m.logger.Info("job created",
		zap.String("job_id", id),
		zap.String("seed_url", seedURL),
		zap.String("domain", domain))

	m.wg.Add(1)
	go m.run(id)
	return id, nil
}

// GetStatus returns the status and progress of a job.
func (m *Manager) GetStatus(jobID string) (scrape.JobStatus, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.jobs[jobID]
	if !ok {
		return "", 0, scrape.ErrJobNotFound
	}
	return st.job.Status, st.job.Progress, nil
}

// GetJob returns a copy of a job's full metadata.
func (m *Manager) GetJob(jobID string) (scrape.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.jobs[jobID]
	if !ok {
		return scrape.Job{}, scrape.ErrJobNotFound
	}
	return st.job, nil
}

// Wait blocks until every background job goroutine has exited. Intended for
// shutdown, after the base context is cancelled.
func (m *Manager) Wait() {
	m.wg.Wait()
}

func (m *Manager) run(jobID string) {
	defer m.wg.Done()

	metrics.IncActiveJobs()
	defer metrics.DecActiveJobs()

	m.mu.Lock()
	st := m.jobs[jobID]
	st.job.Status = scrape.JobStatusRunning
	job := st.job
	m.mu.Unlock()

	logger := m.logger.With(zap.String("job_id", jobID), zap.String("domain", job.Domain))

	candidates, err := m.planner.Plan(m.baseCtx, job.SeedURL, job.UseJS, job.DocTypes)
	if err != nil {
		logger.Warn("planning failed", zap.Error(err))
		m.finish(jobID, scrape.JobStatusFailed)
		return
	}
	if len(candidates) == 0 {
		logger.Info("no candidates discovered")
		m.finish(jobID, scrape.JobStatusFailed)
		return
	}

	m.mu.Lock()
	st.total = len(candidates)
	m.mu.Unlock()

	logger.Info("job running", zap.Int("candidates", len(candidates)))

	g, ctx := errgroup.WithContext(m.baseCtx)
	g.SetLimit(m.cfg.Concurrency)
	for _, cand := range candidates {
		cand := cand
		g.Go(func() error {
			ok := m.processCandidate(ctx, logger, job.Domain, cand)
			m.reportOutcome(jobID, ok)
			// Candidate failures are recorded, never fatal to the job.
			return nil
		})
	}
	_ = g.Wait()

	m.mu.RLock()
	succeeded := st.succeeded
	m.mu.RUnlock()

	status := scrape.JobStatusDone
	if succeeded == 0 {
		status = scrape.JobStatusFailed
	}
	m.finish(jobID, status)
	logger.Info("job finished",
		zap.String("status", string(status)),
		zap.Int("succeeded", succeeded),
		zap.Int("total", len(candidates)))
}

// processCandidate fetches, extracts, and stores one candidate. It reports
// success; failures are logged and counted in metrics.
func (m *Manager) processCandidate(
	ctx context.Context,
	logger *zap.Logger,
	domain string,
	cand scrape.Candidate,
) bool {
	body := cand.Body
	if body == nil {
		resp, err := m.fetcher.Fetch(ctx, cand.URL)
		if err != nil {
			logger.Warn("candidate fetch failed",
				zap.String("url", cand.URL), zap.Error(err))
			metrics.ObserveCandidate(string(cand.Type), "fetch_error")
			return false
		}
		metrics.ObserveFetch(resp.Duration)
		body = resp.Body
	}

	extractor, ok := m.extractors.ForType(cand.Type)
	if !ok {
		logger.Error("no extractor registered", zap.String("type", string(cand.Type)))
		metrics.ObserveCandidate(string(cand.Type), "extract_error")
		return false
	}

	text, err := extractor.Extract(body)
	if err != nil {
		logger.Warn("extraction failed",
			zap.String("url", cand.URL), zap.Error(err))
		metrics.ObserveCandidate(string(cand.Type), "extract_error")
		return false
	}

	if cand.Type == scrape.DocTypePage {
		text = "URL: " + cand.URL + "\n" + text
	}

	filename := scrape.ResultFilename(cand.URL)
	if err := m.store.Put(ctx, domain, filename, []byte(text)); err != nil {
		logger.Error("store write failed",
			zap.String("url", cand.URL), zap.String("filename", filename), zap.Error(err))
		metrics.ObserveCandidate(string(cand.Type), "store_error")
		return false
	}

	metrics.ObserveCandidate(string(cand.Type), "ok")
	return true
}

// reportOutcome advances the job's counters and recomputes progress.
// Progress is capped below 100 until the job reaches a terminal status.
func (m *Manager) reportOutcome(jobID string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, found := m.jobs[jobID]
	if !found {
		return
	}
	st.completed++
	if ok {
		st.succeeded++
	}
	if st.total > 0 {
		progress := st.completed * 100 / st.total
		if progress > 99 {
			progress = 99
		}
		st.job.Progress = progress
	}
}

func (m *Manager) finish(jobID string, status scrape.JobStatus) {
	m.mu.Lock()
	st, found := m.jobs[jobID]
	if found {
		st.job.Status = status
		st.job.Progress = 100
	}
	m.mu.Unlock()
	metrics.ObserveJob(string(status))
}

func dedupeDocTypes(docTypes []scrape.DocType) []scrape.DocType {
	seen := make(map[scrape.DocType]struct{}, len(docTypes))
	var out []scrape.DocType
	for _, dt := range docTypes {
		if _, dup := seen[dt]; dup {
			continue
		}
		seen[dt] = struct{}{}
		out = append(out, dt)
	}
	return out
}
