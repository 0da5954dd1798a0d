package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"task-planner/pkg/log"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r *gin.Engine, ip string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	// 60 per minute gives a burst of 6.
	m := New(log.NewNop(), Config{RequestsPerMin: 60})
	r := newRouter(m.RateLimit())

	for i := 0; i < 6; i++ {
		if w := get(r, "10.0.0.1", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := get(r, "10.0.0.1", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after the burst, got %d", w.Code)
	}
	if w := get(r, "10.0.0.2", nil); w.Code != http.StatusOK {
		t.Errorf("other clients keep their own bucket, got %d", w.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	m := New(log.NewNop(), Config{})
	r := newRouter(m.RateLimit())
	for i := 0; i < 50; i++ {
		if w := get(r, "10.0.0.1", nil); w.Code != http.StatusOK {
			t.Fatalf("expected 200 without a limit, got %d", w.Code)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		remote string
		want   string
	}{
		{"Forwarded for", http.Header{"X-Forwarded-For": {"1.2.3.4, 10.0.0.1"}}, "10.0.0.1:80", "1.2.3.4"},
		{"Real IP", http.Header{"X-Real-Ip": {"5.6.7.8"}}, "10.0.0.1:80", "5.6.7.8"},
		{"Remote addr", http.Header{}, "9.9.9.9:5555", "9.9.9.9"},
		{"Remote addr without port", http.Header{}, "9.9.9.9", "9.9.9.9"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header = tc.header
			req.RemoteAddr = tc.remote
			if got := clientIP(req); got != tc.want {
				t.Errorf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	m := New(log.NewNop(), Config{})
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.RequestLogger())

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen, _ = c.Request.Context().Value(log.RequestIDKey).(string)
		c.Status(http.StatusNoContent)
	})

	w := get(r, "10.0.0.1", http.Header{RequestIDHeader: {"req-42"}})
	if seen != "req-42" {
		t.Errorf("expected the incoming id on the context, got %q", seen)
	}
	if got := w.Header().Get(RequestIDHeader); got != "req-42" {
		t.Errorf("expected the id echoed back, got %q", got)
	}

	w = get(r, "10.0.0.1", nil)
	if w.Header().Get(RequestIDHeader) == "" || seen == "" || seen == "req-42" {
		t.Errorf("expected a generated id, got %q", seen)
	}
}
