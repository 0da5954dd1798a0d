package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"task-planner/internal/middleware"
	"task-planner/pkg/log"
)

type stubTaskHandler struct{ calls int }

func (s *stubTaskHandler) ok(c *gin.Context) {
	s.calls++
	c.Status(http.StatusOK)
}

func (s *stubTaskHandler) Preview(c *gin.Context)         { s.ok(c) }
func (s *stubTaskHandler) QuickAdd(c *gin.Context)        { s.ok(c) }
func (s *stubTaskHandler) Create(c *gin.Context)          { s.ok(c) }
func (s *stubTaskHandler) CreateRecurring(c *gin.Context) { s.ok(c) }
func (s *stubTaskHandler) List(c *gin.Context)            { s.ok(c) }
func (s *stubTaskHandler) Detail(c *gin.Context)          { s.ok(c) }
func (s *stubTaskHandler) Overdue(c *gin.Context)         { s.ok(c) }
func (s *stubTaskHandler) Complete(c *gin.Context)        { s.ok(c) }
func (s *stubTaskHandler) Materialize(c *gin.Context)     { s.ok(c) }
func (s *stubTaskHandler) Delete(c *gin.Context)          { s.ok(c) }
func (s *stubTaskHandler) Timeline(c *gin.Context)        { s.ok(c) }
func (s *stubTaskHandler) Calendar(c *gin.Context)        { s.ok(c) }

func newServer(t *testing.T, h *stubTaskHandler, perMin int) *HTTPServer {
	t.Helper()
	l := log.NewNop()
	srv, err := New(l, Config{
		Logger:      l,
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: "test",
		Middleware:  middleware.New(l, middleware.Config{RequestsPerMin: perMin}),
		TaskHandler: h,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return srv
}

func TestNewValidates(t *testing.T) {
	l := log.NewNop()
	tests := []struct {
		name string
		cfg  Config
	}{
		{"Missing mode", Config{Port: 1, TaskHandler: &stubTaskHandler{}}},
		{"Missing port", Config{Mode: gin.TestMode, TaskHandler: &stubTaskHandler{}}},
		{"Missing task handler", Config{Mode: gin.TestMode, Port: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(l, tc.cfg); err == nil {
				t.Errorf("expected a validation error")
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	h := &stubTaskHandler{}
	srv := newServer(t, h, 0)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/health"},
		{http.MethodGet, "/ready"},
		{http.MethodGet, "/live"},
		{http.MethodPost, "/api/v1/tasks/preview"},
		{http.MethodGet, "/api/v1/tasks/abc"},
		{http.MethodDelete, "/api/v1/tasks/abc"},
		{http.MethodGet, "/api/v1/timeline"},
		{http.MethodGet, "/api/v1/calendar.ics"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s %s: expected 200, got %d", p.method, p.path, w.Code)
		}
	}
	if h.calls != 5 {
		t.Errorf("expected 5 task handler calls, got %d", h.calls)
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("telegram route should be absent, got %d", w.Code)
	}
}

func TestRateLimitOnlyGuardsAPI(t *testing.T) {
	srv := newServer(t, &stubTaskHandler{}, 10) // burst of 1

	get := func(path string) int {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}
	if code := get("/api/v1/timeline"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := get("/api/v1/timeline"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", code)
	}
	if code := get("/health"); code != http.StatusOK {
		t.Errorf("health checks are not limited, got %d", code)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	l := log.NewNop()
	srv, err := New(l, Config{
		Logger:          l,
		Port:            18089,
		Mode:            gin.TestMode,
		Middleware:      middleware.New(l, middleware.Config{}),
		TaskHandler:     &stubTaskHandler{},
		ShutdownTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected a clean shutdown, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestReadyCheck(t *testing.T) {
	l := log.NewNop()
	storeErr := errors.New("database is locked")

	srv, err := New(l, Config{
		Logger:      l,
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: "test",
		Middleware:  middleware.New(l, middleware.Config{}),
		TaskHandler: &stubTaskHandler{},
		ReadyCheck: func(ctx context.Context) error {
			return storeErr
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 while the store fails, got %d", w.Code)
	}

	storeErr = nil
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 once the store answers, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	if w.Code != http.StatusOK {
		t.Errorf("liveness ignores the store, got %d", w.Code)
	}
}
