// Package server exposes the audit engine, the telemetry sampler, and the
// visitor counter over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/config"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/monitor"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/visitors"
)

// Auditor is the orchestrator surface the server consumes. A nil Auditor
// means the cloud account is not configured and audit endpoints answer 503.
type Auditor interface {
	RunFull(ctx context.Context) (*models.Report, error)
	RunStructured(ctx context.Context) (*models.StructuredReport, error)
	RunQuick(ctx context.Context) (*models.QuickReport, error)
}

// Server wires the handlers to their dependencies. All state is injected;
// handlers themselves are stateless.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	sampler  *monitor.Sampler
	visitors *visitors.Counter
	auditor  Auditor
	started  time.Time

	http *http.Server
}

// New assembles the server. auditor may be nil when no cloud credentials are
// available.
func New(cfg *config.Config, sampler *monitor.Sampler, counter *visitors.Counter, auditor Auditor, logger *zap.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		sampler:  sampler,
		visitors: counter,
		auditor:  auditor,
		started:  time.Now().UTC(),
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the routed handler with CORS applied to the API routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/real-metrics", s.handleRealMetrics).Methods(http.MethodGet)
	api.HandleFunc("/metrics/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/metrics/live", s.handleLive).Methods(http.MethodGet)
	api.HandleFunc("/system/alerts", s.handleAlerts).Methods(http.MethodGet)
	api.HandleFunc("/cost", s.handleCost).Methods(http.MethodGet)
	api.HandleFunc("/visitors", s.handleVisitors).Methods(http.MethodGet)
	api.HandleFunc("/aws/audit", s.handleAudit).Methods(http.MethodGet)
	api.HandleFunc("/aws/audit/structured", s.handleAuditStructured).Methods(http.MethodGet)
	api.HandleFunc("/aws/audit/quick", s.handleAuditQuick).Methods(http.MethodGet)

	// The dashboard may be hosted on another origin.
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}).Handler(r)
}

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
