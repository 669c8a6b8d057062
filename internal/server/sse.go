package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/assist"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// handleStreamAssist streams the draft state of a section: one "state" event
// now and a "complete" event once the running draft finishes.
func (s *Server) handleStreamAssist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	section, err := assist.ParseSection(r.PathValue("section"))
	if err != nil {
		s.failure(w, err)
		return
	}
	task, err := s.store.Task(id, section)
	if err != nil {
		s.failure(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	// a draft may outlive the server write timeout
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		log.Printf("[assist] could not clear stream deadline: %v", err)
	}

	done := task.Done()
	if err := sse.WriteEvent("state", newAssistResponse(id, section, task.Snapshot())); err != nil {
		return
	}

	select {
	case <-done:
		sse.WriteEvent("complete", newAssistResponse(id, section, task.Snapshot())) //nolint:errcheck
	case <-r.Context().Done():
	}
}
