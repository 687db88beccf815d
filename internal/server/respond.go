package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Debug("response encode failed", zap.Error(err))
	}
}

// writeError emits the uniform error shape. Internal detail stays in the
// log; the body never carries a stack trace.
func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, map[string]any{
		"error":     code,
		"message":   message,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) writeUnavailable(w http.ResponseWriter) {
	s.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
		"error":   "aws_not_configured",
		"message": "AWS credentials are not configured; audit endpoints are unavailable",
	})
}
