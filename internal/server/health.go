package server

import (
	"net/http"
	"time"
)

// handleHealth reports aggregate health. Always 200: orchestration reads the
// status field, not the code.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	current := s.sampler.Current()
	thresholds := s.sampler.Thresholds()
	alerts := s.sampler.Alerts()

	status := "healthy"
	for _, alert := range alerts {
		if alert.Level == "CRITICAL" {
			status = "critical"
			break
		}
		status = "degraded"
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"metrics":   current,
		"alerts":    alerts,
		"checks": map[string]bool{
			"cpu_ok":              current.CPUPercent <= thresholds.CPU,
			"memory_ok":           current.MemoryPercent <= thresholds.Memory,
			"disk_ok":             current.DiskPercent <= thresholds.Disk,
			"redis_connected":     s.visitors.RemoteConnected(),
			"app_running":         true,
			"aws_audit_available": s.auditor != nil,
		},
	})
}
