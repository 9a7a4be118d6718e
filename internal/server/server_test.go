package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/portfolio-builder/internal/config"
	"github.com/jonathan/portfolio-builder/internal/export"
	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateFunc func(ctx context.Context, req llm.Request) (string, error)

	mu       sync.Mutex
	requests []llm.Request
}

func (m *MockLLMClient) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return "Generated text", nil
}

func (m *MockLLMClient) Model(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func (m *MockLLMClient) Requests() []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.Request(nil), m.requests...)
}

// mockPrinter implements export.Printer for testing
type mockPrinter struct {
	html []byte
}

func (p *mockPrinter) Print(_ context.Context, html []byte) ([]byte, error) {
	p.html = html
	return []byte("%PDF-1.7 mock"), nil
}

var _ export.Printer = (*mockPrinter)(nil)

type testOption func(*config.Config, *Options)

func withPrinter(p export.Printer) testOption {
	return func(_ *config.Config, o *Options) { o.Printer = p }
}

func withConfig(fn func(*config.Config)) testOption {
	return func(c *config.Config, _ *Options) { fn(c) }
}

func newTestServer(t *testing.T, client llm.Client, opts ...testOption) *Server {
	t.Helper()
	cfg := config.Defaults()
	cfg.RateLimit = false
	cfg.SessionTTL = 0

	o := Options{Client: client}
	for _, opt := range opts {
		opt(&cfg, &o)
	}
	o.Config = &cfg

	s, err := New(o)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[map[string]string](t, w)
	assert.Equal(t, "ok", resp["status"])
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Port = 0
	_, err := New(Options{Config: &cfg})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, ":8080", s.Addr())
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)
	w := do(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORS_Wildcard(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestCORS_AllowList(t *testing.T) {
	s := newTestServer(t, nil, withConfig(func(c *config.Config) {
		c.AllowedOrigins = "http://localhost:5173, http://127.0.0.1:5173"
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://127.0.0.1:5173")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://127.0.0.1:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, w.Code, "CORS does not block same-origin style requests")
}

func TestRateLimit(t *testing.T) {
	t.Setenv("PORTFOLIO_RATE_LIMIT_ENABLED", "true")
	client := &MockLLMClient{}
	s := newTestServer(t, client, withConfig(func(c *config.Config) { c.RateLimit = true }))

	body := map[string]any{"document": map[string]any{}, "jobDescription": "Go developer"}
	for i := 0; i < 3; i++ {
		w := do(t, s, http.MethodPost, "/generate-cover-letter", body)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
		assert.Equal(t, "20", w.Header().Get("X-RateLimit-Limit"))
	}

	w := do(t, s, http.MethodPost, "/generate-cover-letter", body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	resp := decode[map[string]any](t, w)
	assert.Equal(t, "rate_limit_exceeded", resp["error"])
	assert.Len(t, client.Requests(), 3)

	// Health checks are never limited
	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", nil).Code)
	}
}

func TestStatusRecorder_Flush(t *testing.T) {
	w := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: w}
	rec.Flush()
	assert.True(t, w.Flushed)

	_, err := rec.Write([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.status)
}

func TestEventStream(t *testing.T) {
	w := httptest.NewRecorder()
	stream, err := newEventStream(w)
	require.NoError(t, err)

	require.NoError(t, stream.send(sseEvent{ID: "3", Name: eventDocument, Data: map[string]int{"version": 3}}))
	require.NoError(t, stream.send(sseEvent{Name: eventGeneration, Data: map[string]string{"target": "bio"}}))
	require.NoError(t, stream.ping())
	stream.fail("boom")

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "id: 3\nevent: document\ndata: {\"version\":3}\n\n"))
	assert.Contains(t, body, "event: generation\ndata: {\"target\":\"bio\"}\n\n")
	assert.Contains(t, body, ": ping\n\n")
	assert.Contains(t, body, "event: error\ndata: {\"error\":\"boom\"}\n\n")
}
