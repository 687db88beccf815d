package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// liveInterval is the cadence of the metrics event stream.
const liveInterval = 3 * time.Second

// handleLive streams the current sample as Server-Sent Events until the
// client disconnects. A write deadline of one interval bounds each event
// write; a client too slow to take an event within it is dropped rather than
// queued behind.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming_unsupported", "response writer does not support streaming")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	ticker := time.NewTicker(liveInterval)
	defer ticker.Stop()

	send := func() bool {
		payload, err := json.Marshal(s.sampler.Current())
		if err != nil {
			return false
		}
		_ = rc.SetWriteDeadline(time.Now().Add(liveInterval))
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			s.logger.Debug("sse client gone", zap.Error(err))
			return false
		}
		flusher.Flush()
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if !send() {
				return
			}
		}
	}
}
