package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/jonathan/resume-analyzer/internal/upload"
)

// SSE event names
const (
	EventState    = "state"
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
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

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// progressEvent adds the display label to a progress update
type progressEvent struct {
	analysis.Progress
	Label string `json:"label"`
}

// WriteState sends an upload flow state change
func (s *SSEWriter) WriteState(state upload.State) error {
	return s.WriteEvent(EventState, map[string]upload.State{"state": state})
}

// WriteProgress sends a progress update
func (s *SSEWriter) WriteProgress(p analysis.Progress) error {
	return s.WriteEvent(EventProgress, progressEvent{Progress: p, Label: p.Phase.Label()})
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(err error) {
	s.WriteEvent(EventError, newErrorBody(err)) //nolint:errcheck
}

// WriteComplete sends the stored analysis
func (s *SSEWriter) WriteComplete(record *types.AnalysisRecord) {
	s.WriteEvent(EventComplete, record) //nolint:errcheck
}
