package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/swissseo/analyzer"
	"github.com/seo-optimizer/swissseo/history"
	"github.com/seo-optimizer/swissseo/logging"
	"github.com/seo-optimizer/swissseo/stats"
)

const sampleContent = "Unser Treuhand Büro in Zürich betreut KMU in der ganzen Schweiz. " +
	"Wir bieten Beratung, Service und persönliche Betreuung mit hoher Qualität."

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedCounters struct{}

func (fixedCounters) GetCurrentStats() stats.MonthlyStats {
	return stats.MonthlyStats{AnalysisCacheHits: 7}
}

func (fixedCounters) GetAllMonths() []string {
	return []string{"2024-05", "2024-04"}
}

func (fixedCounters) GetMonthlyStats(yearMonth string) (stats.MonthlyStats, bool) {
	switch yearMonth {
	case "2024-05":
		return stats.MonthlyStats{AnalysisCacheHits: 7}, true
	case "2024-04":
		return stats.MonthlyStats{AnalysisCacheHits: 3, PartCacheMisses: 9}, true
	}
	return stats.MonthlyStats{}, false
}

type failingStore struct{}

func (failingStore) Save(context.Context, history.Record) (history.Record, error) {
	return history.Record{}, errors.New("disk full")
}

func (failingStore) Get(context.Context, string) (history.Record, error) {
	return history.Record{}, errors.New("disk full")
}

func (failingStore) Recent(context.Context, int) ([]history.Record, error) {
	return nil, errors.New("disk full")
}

func (failingStore) Count(context.Context) (int, error) {
	return 0, errors.New("disk full")
}

func newTestServer(t *testing.T, store HistoryStore) *Server {
	t.Helper()

	a, err := analyzer.New()
	if err != nil {
		t.Fatalf("Failed to create analyzer: %v", err)
	}
	if store == nil {
		s, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
		if err != nil {
			t.Fatalf("Failed to open history: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		store = s
	}
	statistics, err := logging.NewStatistics(filepath.Join(t.TempDir(), "statistics.json"), false)
	if err != nil {
		t.Fatalf("Failed to create statistics: %v", err)
	}

	return New(Config{
		Analyzer:   a,
		History:    store,
		Counters:   fixedCounters{},
		Statistics: statistics,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := doJSON(t, s, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("Unexpected health response %d %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeAndHistory(t *testing.T) {
	s := newTestServer(t, nil)

	w := doJSON(t, s, http.MethodPost, "/api/analyze", map[string]string{
		"content": sampleContent,
		"title":   "Treuhand Zürich",
		"source":  "post-1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		ID       string                   `json:"id"`
		Analysis analyzer.ContentAnalysis `json:"analysis"`
		SEO      analyzer.SEOScoreReport  `json:"seo"`
	}
	decode(t, w, &response)
	if response.ID == "" {
		t.Fatal("Expected a history ID")
	}
	if response.Analysis.WordCount == 0 || response.SEO.MaxScore != analyzer.MaxSEOScore {
		t.Errorf("Unexpected analysis response %+v", response)
	}
	if !response.Analysis.RegionalInfo.IsSwissFocused {
		t.Errorf("Expected Swiss focused content, got %+v", response.Analysis.RegionalInfo)
	}

	t.Run("Get", func(t *testing.T) {
		w := doJSON(t, s, http.MethodGet, "/api/history/"+response.ID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var rec history.Record
		decode(t, w, &rec)
		if rec.Source != "post-1" || rec.Report.Score != response.SEO.Score {
			t.Errorf("Unexpected record %+v", rec)
		}
	})

	t.Run("Recent", func(t *testing.T) {
		w := doJSON(t, s, http.MethodGet, "/api/history?limit=5", nil)
		var body struct {
			Records []history.Record `json:"records"`
			Total   int              `json:"total"`
		}
		decode(t, w, &body)
		if len(body.Records) != 1 || body.Records[0].ID != response.ID {
			t.Errorf("Expected the stored record, got %+v", body.Records)
		}
		if body.Total != 1 {
			t.Errorf("Expected total 1, got %d", body.Total)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		w := doJSON(t, s, http.MethodGet, "/api/history/unknown", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		w := doJSON(t, s, http.MethodGet, "/api/history?limit=abc", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("Statistics", func(t *testing.T) {
		w := doJSON(t, s, http.MethodGet, "/api/statistics", nil)
		var summary map[string]any
		decode(t, w, &summary)
		if summary["totalRequests"] != 1.0 {
			t.Errorf("Expected 1 tracked analysis, got %v", summary["totalRequests"])
		}
	})
}

func TestAnalyzeValidation(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"MissingContent", map[string]string{"title": "Nur Titel"}, http.StatusBadRequest},
		{"NotJSON", "nope", http.StatusBadRequest},
		{"TooLarge", map[string]string{"content": strings.Repeat("a", maxContentBytes+1)}, http.StatusRequestEntityTooLarge},
		{"BodyTooLarge", map[string]string{"content": "Kurz.", "source": strings.Repeat("a", maxBodyBytes)}, http.StatusRequestEntityTooLarge},
		{"TitleTooLarge", map[string]string{"content": sampleContent, "title": strings.Repeat("a", maxTitleBytes+1)}, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doJSON(t, s, http.MethodPost, "/api/analyze", tt.body); w.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestAnalyzeStoreFailure(t *testing.T) {
	s := newTestServer(t, failingStore{})

	w := doJSON(t, s, http.MethodPost, "/api/analyze", map[string]string{"content": sampleContent})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if w := doJSON(t, s, http.MethodGet, "/api/history/x", nil); w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500 for a failing store, got %d", w.Code)
	}
	if w := doJSON(t, s, http.MethodPost, "/api/meta", map[string]string{"content": sampleContent, "title": strings.Repeat("a", maxTitleBytes+1)}); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status 413 for an oversized meta title, got %d", w.Code)
	}
}

func TestMeta(t *testing.T) {
	s := newTestServer(t, nil)

	w := doJSON(t, s, http.MethodPost, "/api/meta", map[string]string{
		"content":          sampleContent,
		"meta_title":       "Treuhand in Zürich für KMU und Selbständige",
		"meta_description": "Treuhand",
		"focus_keyword":    "Treuhand",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Meta analyzer.MetaReport `json:"meta"`
	}
	decode(t, w, &response)
	if !response.Meta.KeywordInTitle || !response.Meta.KeywordInContent {
		t.Errorf("Expected keyword in title and content, got %+v", response.Meta)
	}
	// 35 title + 15 description + 30 keyword
	if response.Meta.Score != 80 {
		t.Errorf("Expected meta score 80, got %d", response.Meta.Score)
	}
}

func TestCacheEndpoints(t *testing.T) {
	s := newTestServer(t, nil)
	doJSON(t, s, http.MethodPost, "/api/analyze", map[string]string{"content": sampleContent})

	var before struct {
		Cache   analyzer.CacheStats `json:"cache"`
		Monthly stats.MonthlyStats  `json:"monthly"`
		Months  []monthCounters     `json:"months"`
	}
	decode(t, doJSON(t, s, http.MethodGet, "/api/cache", nil), &before)
	if before.Cache.Entries == 0 {
		t.Error("Expected cache entries after an analysis")
	}
	if before.Monthly.AnalysisCacheHits != 7 {
		t.Errorf("Expected monthly counters, got %+v", before.Monthly)
	}
	if len(before.Months) != 2 || before.Months[1].Month != "2024-04" || before.Months[1].PartCacheMisses != 9 {
		t.Errorf("Expected the monthly history, got %+v", before.Months)
	}

	if w := doJSON(t, s, http.MethodDelete, "/api/cache", nil); w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var after struct {
		Cache analyzer.CacheStats `json:"cache"`
	}
	decode(t, doJSON(t, s, http.MethodGet, "/api/cache", nil), &after)
	if after.Cache.Entries != 0 {
		t.Errorf("Expected empty cache after clear, got %d", after.Cache.Entries)
	}
}
