// Package web provides the read-only admin HTTP server: the rendered
// schema, the emitted type list, health and metrics.
package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/zakariaelas/contentgraph/adapters/metrics"
)

// TypeSummary is one emitted type in the /types listing.
type TypeSummary struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Fields  int      `json:"fields,omitempty"`
	Members []string `json:"members,omitempty"`
}

// Snapshot is the immutable result of one successful schema build.
type Snapshot struct {
	SDL     string        `json:"-"`
	Types   []TypeSummary `json:"types"`
	BuiltAt time.Time     `json:"builtAt"`
}

// Deps contains dependencies for the admin handler.
type Deps struct {
	// Snapshot returns the currently served schema; nil before the first
	// successful build.
	Snapshot func() *Snapshot

	Logger         zerolog.Logger
	Metrics        *metrics.Collector
	Gatherer       prometheus.Gatherer
	MetricsEnabled bool
	MetricsPath    string
}

// Handler provides the admin endpoints.
type Handler struct {
	deps Deps
}

// NewHandler creates a new admin handler.
func NewHandler(deps Deps) *Handler {
	if deps.MetricsPath == "" {
		deps.MetricsPath = "/metrics"
	}
	return &Handler{deps: deps}
}

// Routes returns the chi router for the admin server.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.observe)

	r.Get("/healthz", h.handleHealth)
	r.Get("/schema", h.handleSchema)
	r.Get("/types", h.handleTypes)

	if h.deps.MetricsEnabled && h.deps.Gatherer != nil {
		r.Method(http.MethodGet, h.deps.MetricsPath,
			promhttp.HandlerFor(h.deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok", "schemaReady": h.deps.Snapshot() != nil}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	snap := h.deps.Snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "schema not built yet"})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(snap.SDL))
}

func (h *Handler) handleTypes(w http.ResponseWriter, r *http.Request) {
	snap := h.deps.Snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "schema not built yet"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// observe logs each request and counts it toward the request metrics.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		h.deps.Logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("admin request")

		if h.deps.Metrics != nil {
			h.deps.Metrics.RequestsTotal.
				WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).
				Inc()
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
