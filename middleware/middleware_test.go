package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seo-optimizer/swissseo/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(zap.NewNop()))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := perform(r, http.MethodGet, "/panic", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("Expected a request ID on the error response")
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.NewNop()))
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("Generated", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/id", nil)
		id := w.Header().Get(RequestIDHeader)
		if len(id) != 36 {
			t.Errorf("Expected a UUID, got %q", id)
		}
		if w.Body.String() != id {
			t.Errorf("Expected handler to see %q, got %q", id, w.Body.String())
		}
	})

	t.Run("Propagated", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/id", http.Header{RequestIDHeader: {"abc-123"}})
		if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("Expected propagated ID, got %q", got)
		}
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodOptions, "/ok", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected preflight status 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS headers on preflight")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	t.Run("Burst", func(t *testing.T) {
		if !rl.Allow("1.1.1.1") || !rl.Allow("1.1.1.1") {
			t.Fatal("Expected the burst to be allowed")
		}
		if rl.Allow("1.1.1.1") {
			t.Error("Expected the third request to be limited")
		}
		if !rl.Allow("2.2.2.2") {
			t.Error("Expected other clients to have their own bucket")
		}
	})

	t.Run("Refill", func(t *testing.T) {
		now = now.Add(time.Second)
		if !rl.Allow("1.1.1.1") {
			t.Error("Expected a token after one second")
		}
	})

	t.Run("Sweep", func(t *testing.T) {
		now = now.Add(2 * idleTimeout)
		rl.Allow("3.3.3.3")
		rl.mu.Lock()
		defer rl.mu.Unlock()
		if len(rl.clients) != 1 {
			t.Errorf("Expected idle clients to be dropped, got %d", len(rl.clients))
		}
	})

	t.Run("Middleware", func(t *testing.T) {
		r := gin.New()
		r.Use(NewRateLimiter(1, 1).RateLimit())
		r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

		if w := perform(r, http.MethodGet, "/ok", nil); w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w := perform(r, http.MethodGet, "/ok", nil); w.Code != http.StatusTooManyRequests {
			t.Errorf("Expected status 429, got %d", w.Code)
		}
	})
}

func TestStatsMiddleware(t *testing.T) {
	stats, err := logging.NewStatistics(filepath.Join(t.TempDir(), "statistics.json"), true)
	if err != nil {
		t.Fatalf("Failed to create statistics: %v", err)
	}

	r := gin.New()
	r.Use(StatsMiddleware(stats, "/api/analyze", zap.NewNop()))
	r.POST("/api/analyze", func(c *gin.Context) {
		c.Set(SourceKey, "Startseite")
		c.Status(http.StatusOK)
	})
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(r, http.MethodPost, "/api/analyze", nil)
	perform(r, http.MethodGet, "/api/health", nil)

	summary := stats.GetStatistics()
	if summary["totalRequests"] != 1 {
		t.Errorf("Expected only the analysis request to be tracked, got %v", summary["totalRequests"])
	}
	if summary["uniqueVisitors24h"] != 1 {
		t.Errorf("Expected 1 visitor, got %v", summary["uniqueVisitors24h"])
	}
	if sources := summary["popularSources"].(map[string]int); sources["startseite"] != 1 {
		t.Errorf("Expected source startseite, got %v", sources)
	}
}
