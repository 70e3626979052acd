// Package server exposes queries, categories, health and metrics over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/deusflow/campusnews/internal/app"
	"github.com/deusflow/campusnews/internal/logger"
	"github.com/deusflow/campusnews/internal/metrics"
	"github.com/deusflow/campusnews/internal/news"
)

// scrapTopN is how many articles the "scrap" view shows.
const scrapTopN = 6

// Querier is the part of app.Service the server needs.
type Querier interface {
	Query(ctx context.Context, q news.QuerySpec, opts app.Options) (*app.Result, error)
	Categories() []string
}

// StatsReporter exposes usage counters. *ratelimit.Budget implements it.
type StatsReporter interface {
	GetStats() map[string]interface{}
}

type Server struct {
	svc     Querier
	metrics *metrics.Metrics
	budget  StatsReporter
	router  chi.Router
}

// New builds the router. A nil m means metrics.Global; budget may be nil.
func New(svc Querier, m *metrics.Metrics, budget StatsReporter) *Server {
	if m == nil {
		m = metrics.Global
	}
	s := &Server{svc: svc, metrics: m, budget: budget}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxAge:         300,
	}).Handler)

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
	r.Route("/api", func(r chi.Router) {
		r.Get("/articles", s.handleArticles)
		r.Get("/categories", s.handleCategories)
	})
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	q, opts, err := ParseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.svc.Query(r.Context(), q, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, news.ErrInvalidQuery) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": s.svc.Categories(),
		"fallback":   news.OtherCategory,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.metrics.GetStats()

	status, code := "ok", http.StatusOK
	if !s.metrics.Healthy() {
		status, code = "error", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	stats := s.metrics.GetStats()
	if s.budget != nil {
		stats["summary_budget"] = s.budget.GetStats()
	}
	writeJSON(w, http.StatusOK, stats)
}

// ParseQuery reads query, category, range, top, summarize, refresh and scrap.
// scrap=1 means the last 24 hours ranked by importance, top 6.
func ParseQuery(r *http.Request) (news.QuerySpec, app.Options, error) {
	v := r.URL.Query()

	window, err := news.ParseWindow(v.Get("range"))
	if err != nil {
		return news.QuerySpec{}, app.Options{}, err
	}
	q := news.QuerySpec{
		Query:    strings.TrimSpace(v.Get("query")),
		Category: strings.TrimSpace(v.Get("category")),
		Window:   window,
	}

	if top := v.Get("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil || n < 1 {
			return news.QuerySpec{}, app.Options{}, fmt.Errorf("%w: top must be a positive integer, got %q", news.ErrInvalidQuery, top)
		}
		q.TopN = n
	}
	if flag(v.Get("scrap")) {
		q.Window = news.WindowLast24h
		q.TopN = scrapTopN
	}

	opts := app.Options{
		Summarize: flag(v.Get("summarize")),
		Refresh:   flag(v.Get("refresh")),
	}
	return q, opts, nil
}

func flag(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.Info("Request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
