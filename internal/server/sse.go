package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jonathan/portfolio-builder/internal/session"
)

// Event names sent on /sessions/{id}/events
const (
	eventDocument   = "document"
	eventGeneration = "generation"
	eventError      = "error"
)

var errNoStreaming = errors.New("streaming not supported")

// sseEvent is one server-sent event. An empty ID omits the id line.
type sseEvent struct {
	ID   string
	Name string
	Data any
}

// documentEvent carries a snapshot; its id is the document version
func documentEvent(ev session.Event) sseEvent {
	return sseEvent{ID: strconv.FormatUint(ev.Version, 10), Name: eventDocument, Data: DocumentEvent(ev)}
}

// eventStream writes server-sent events, flushing after each frame
type eventStream struct {
	w     http.ResponseWriter
	flush http.Flusher
}

func newEventStream(w http.ResponseWriter) (*eventStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errNoStreaming
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	return &eventStream{w: w, flush: flusher}, nil
}

func (s *eventStream) send(ev sseEvent) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}

	var frame bytes.Buffer
	if ev.ID != "" {
		frame.WriteString("id: " + ev.ID + "\n")
	}
	frame.WriteString("event: " + ev.Name + "\n")
	frame.WriteString("data: ")
	frame.Write(data)
	frame.WriteString("\n\n")
	return s.emit(frame.Bytes())
}

// fail sends a terminal error event; the stream is closing so write errors are dropped
func (s *eventStream) fail(message string) {
	_ = s.send(sseEvent{Name: eventError, Data: map[string]string{"error": message}})
}

// ping writes a comment frame that keeps idle connections open
func (s *eventStream) ping() error {
	return s.emit([]byte(": ping\n\n"))
}

func (s *eventStream) emit(frame []byte) error {
	if _, err := s.w.Write(frame); err != nil {
		return err
	}
	s.flush.Flush()
	return nil
}
