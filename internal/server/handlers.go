package server

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/version"
)

// Cost calculator defaults, in Fargate units (vCPU, GB).
const (
	defaultCostCPU    = 0.25
	defaultCostMemory = 0.5
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if _, err := s.visitors.RecordVisit(r.Context(), clientIP(r), r.UserAgent()); err != nil {
		s.logger.Debug("visit not recorded", zap.Error(err))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(dashboardHTML))
}

func (s *Server) handleRealMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, struct {
		models.Snapshot
		RedisConnected    bool `json:"redis_connected"`
		AWSAuditAvailable bool `json:"aws_audit_available"`
	}{
		Snapshot:          s.sampler.Snapshot(),
		RedisConnected:    s.visitors.RemoteConnected(),
		AWSAuditAvailable: s.auditor != nil,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.sampler.History(0))
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := s.sampler.Alerts()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"timestamp":  time.Now().UTC(),
		"alerts":     alerts,
		"count":      len(alerts),
		"thresholds": s.sampler.Thresholds(),
	})
}

func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	cpu := queryFloat(r, "cpu", defaultCostCPU)
	memory := queryFloat(r, "memory", defaultCostMemory)

	hourly := cpu*s.cfg.FargateCPUPrice + memory*s.cfg.FargateMemoryPrice
	s.writeJSON(w, http.StatusOK, map[string]any{
		"cpu_units": cpu,
		"memory_gb": memory,
		"currency":  "USD",
		"hourly":    hourly,
		"daily":     hourly * 24,
		"monthly":   hourly * 24 * 30,
		"yearly":    hourly * 24 * 365,
		"cpu_price": s.cfg.FargateCPUPrice,
		"mem_price": s.cfg.FargateMemoryPrice,
	})
}

func (s *Server) handleVisitors(w http.ResponseWriter, r *http.Request) {
	total, err := s.visitors.Total(r.Context())
	if err != nil {
		s.logger.Warn("visitor total unavailable", zap.Error(err))
	}
	backendVisits, err := s.visitors.RecentFromBackend(r.Context(), 10)
	if err != nil {
		s.logger.Debug("backend visit list unavailable", zap.Error(err))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"total_visitors":  total,
		"recent_visits":   backendVisits,
		"recent_memory":   s.visitors.Recent(10),
		"redis_connected": s.visitors.RemoteConnected(),
	})
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if s.auditor == nil {
		s.writeUnavailable(w)
		return
	}
	report, err := s.auditor.RunFull(r.Context())
	if err != nil {
		s.logger.Error("full audit failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "audit_failed", "audit run failed")
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAuditStructured(w http.ResponseWriter, r *http.Request) {
	if s.auditor == nil {
		s.writeUnavailable(w)
		return
	}
	report, err := s.auditor.RunStructured(r.Context())
	if err != nil {
		s.logger.Error("structured audit failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "audit_failed", "audit run failed")
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAuditQuick(w http.ResponseWriter, r *http.Request) {
	if s.auditor == nil {
		s.writeUnavailable(w)
		return
	}
	report, err := s.auditor.RunQuick(r.Context())
	if err != nil {
		s.logger.Error("quick audit failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "audit_failed", "audit run failed")
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"service": "cloudpulse",
		"version": version.Version,
		"env":     s.cfg.Env,
		"region":  s.cfg.AWSRegion,
		"features": map[string]bool{
			"redis":     s.visitors.RemoteConnected(),
			"aws_audit": s.auditor != nil,
		},
		"endpoints": []string{
			"/", "/health", "/info", "/metrics",
			"/api/status", "/api/real-metrics", "/api/metrics/history",
			"/api/metrics/live", "/api/system/alerts", "/api/cost",
			"/api/visitors", "/api/aws/audit", "/api/aws/audit/structured",
			"/api/aws/audit/quick",
		},
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.sampler.Current())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"version":   version.Version,
	})
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		return fallback
	}
	return val
}

// clientIP prefers the forwarded header set by proxies.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
