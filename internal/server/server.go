// Package server exposes the dashboard query, exports and metrics over a
// local HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/revanthlol/focusd/internal/dashboard"
	"github.com/revanthlol/focusd/internal/dateutil"
	"github.com/revanthlol/focusd/internal/usage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultAddr is where the API listens unless configured otherwise.
const DefaultAddr = "127.0.0.1:7878"

// Catalog lists stored data for the export and apps endpoints.
type Catalog interface {
	Export(ctx context.Context) ([]usage.ExportEntry, error)
	Apps(ctx context.Context) ([]usage.AppInfo, error)
}

// Server serves the focusd HTTP API.
type Server struct {
	source   dashboard.Source
	catalog  Catalog
	gatherer prometheus.Gatherer
	logger   zerolog.Logger
	router   *mux.Router
	now      func() time.Time
}

// New builds the router. A nil gatherer disables /metrics.
func New(source dashboard.Source, catalog Catalog, gatherer prometheus.Gatherer, logger zerolog.Logger) *Server {
	s := &Server{
		source:   source,
		catalog:  catalog,
		gatherer: gatherer,
		logger:   logger.With().Str("component", "server").Logger(),
		router:   mux.NewRouter(),
		now:      time.Now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)

	// Full paths keep wrong-method requests at 405.
	s.router.HandleFunc("/api/data", s.handleData).Methods(http.MethodGet)
	s.router.HandleFunc("/api/export", s.handleExport).Methods(http.MethodGet)
	s.router.HandleFunc("/api/apps", s.handleApps).Methods(http.MethodGet)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	if s.gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr and serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("http api listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	s.logger.Info().Msg("http api stopped")
	return nil
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view, err := usage.ParseView(q.Get("view"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var date time.Time
	if raw := q.Get("date"); raw != "" {
		date, err = dateutil.ParsePastDate(raw, s.now())
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("date %q: %w", raw, err))
			return
		}
	}

	d, err := s.source.Fetch(r.Context(), usage.Request{View: view, Date: date})
	if err != nil {
		s.logger.Error().Err(err).Str("view", string(view)).Msg("fetching dashboard")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, d.Normalize())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.catalog.Export(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("exporting")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rows == nil {
		rows = []usage.ExportEntry{}
	}
	w.Header().Set("Content-Disposition", `attachment; filename="focusd-export.json"`)
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleApps(w http.ResponseWriter, r *http.Request) {
	apps, err := s.catalog.Apps(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("listing apps")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if apps == nil {
		apps = []usage.AppInfo{}
	}
	writeJSON(w, http.StatusOK, apps)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
