// Package api exposes the scraper's HTTP surface.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"docscraper/internal/metrics"
	"docscraper/internal/scrape"
)

// JobService is the slice of the job manager the API needs.
type JobService interface {
	CreateJob(ctx context.Context, seedURL string, useJS bool, docTypes []scrape.DocType) (string, error)
	GetStatus(jobID string) (scrape.JobStatus, int, error)
}

// Server routes HTTP requests to the job manager and result store.
type Server struct {
	logger *zap.Logger
	jobs   JobService
	store  scrape.ResultStore
	router chi.Router
}

// NewServer builds the router with the standard middleware stack.
func NewServer(logger *zap.Logger, jobs JobService, store scrape.ResultStore) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		logger: logger,
		jobs:   jobs,
		store:  store,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/scrape", s.handleScrape)
		r.Get("/status/{job_id}", s.handleStatus)
		r.Get("/results/{domain}", s.handleResults)
		r.Get("/download/{domain}/{filename}", s.handleDownload)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type scrapeRequest struct {
	URL      string   `json:"url"`
	DocTypes []string `json:"doc_types"`
	UseJS    bool     `json:"use_js"`
}

type scrapeResponse struct {
	JobID string `json:"job_id"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Omitted doc_types means "everything we know how to extract".
	var docTypes []scrape.DocType
	if len(req.DocTypes) == 0 {
		docTypes = scrape.SupportedDocTypes()
	} else {
		for _, raw := range req.DocTypes {
			dt, ok := scrape.ParseDocType(raw)
			if !ok {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported document type %q", raw))
				return
			}
			docTypes = append(docTypes, dt)
		}
	}

	jobID, err := s.jobs.CreateJob(r.Context(), req.URL, req.UseJS, docTypes)
	if err != nil {
		var reqErr *scrape.InvalidRequestError
		if errors.As(err, &reqErr) {
			writeError(w, http.StatusBadRequest, reqErr.Reason)
			return
		}
		s.logger.Error("create job failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not create job")
		return
	}

	writeJSON(w, http.StatusAccepted, scrapeResponse{JobID: jobID})
}

type statusResponse struct {
	JobID    string           `json:"job_id"`
	Status   scrape.JobStatus `json:"status"`
	Progress int              `json:"progress"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")

	status, progress, err := s.jobs.GetStatus(jobID)
	if err != nil {
		if errors.Is(err, scrape.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		s.logger.Error("status lookup failed", zap.String("job_id", jobID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not look up job")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{JobID: jobID, Status: status, Progress: progress})
}

type resultsResponse struct {
	Domain string   `json:"domain"`
	Files  []string `json:"files"`
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")

	files, err := s.store.List(r.Context(), domain)
	if err != nil {
		s.logger.Error("list results failed", zap.String("domain", domain), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list results")
		return
	}
	if files == nil {
		files = []string{}
	}

	writeJSON(w, http.StatusOK, resultsResponse{Domain: domain, Files: files})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")
	filename := chi.URLParam(r, "filename")

	content, err := s.store.Get(r.Context(), domain, filename)
	if err != nil {
		if errors.Is(err, scrape.ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		s.logger.Error("download failed",
			zap.String("domain", domain), zap.String("filename", filename), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not read file")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
