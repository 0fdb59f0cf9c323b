package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"petmate/internal/backend"
	"petmate/internal/config"
	"petmate/internal/events"

	"github.com/rs/zerolog"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

// fakeBackend serves canned responses per "METHOD /path" and records calls.
type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeBackend(t *testing.T) (*fakeBackend, *backend.Client) {
	t.Helper()
	fb := &fakeBackend{routes: make(map[string]func(w http.ResponseWriter, r *http.Request))}
	ts := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(ts.Close)
	return fb, backend.NewClient(config.BackendConfig{BaseURL: ts.URL}, nil)
}

func (f *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	handler, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}

func (f *fakeBackend) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func (f *fakeBackend) calls() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func testLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func seoul(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	return loc
}

// recordingBus captures published events.
type recordingBus struct {
	*events.EventBus
	mu     sync.Mutex
	events []string
}

func newRecordingBus() *recordingBus {
	return &recordingBus{EventBus: events.NewEventBus()}
}

func (b *recordingBus) PublishJSON(eventType string, payload interface{}) error {
	b.mu.Lock()
	b.events = append(b.events, eventType)
	b.mu.Unlock()
	return b.EventBus.PublishJSON(eventType, payload)
}

func (b *recordingBus) published() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.events...)
}
