package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// TestRequestID tests ID generation and inbound header passthrough.
func TestRequestID(t *testing.T) {
	engine := newEngine()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a generated request ID header")
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	engine.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("Expected inbound request ID to pass through, got %q", got)
	}
}

// TestRequestLogger tests that each request produces one log line.
func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()

	engine := newEngine()
	engine.Use(RequestLogger(logger))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if len(hook.Entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(hook.Entries))
	}
	if hook.LastEntry().Data["path"] != "/" {
		t.Errorf("Expected path field, got %v", hook.LastEntry().Data)
	}
}

// TestRateLimit tests that requests beyond the burst are rejected.
func TestRateLimit(t *testing.T) {
	logger, _ := test.NewNullLogger()

	engine := newEngine()
	engine.Use(RateLimit(logger, 1, 1))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	engine.ServeHTTP(first, httptest.NewRequest("GET", "/", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	engine.ServeHTTP(second, httptest.NewRequest("GET", "/", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("Expected second request to be limited, got %d", second.Code)
	}
}
