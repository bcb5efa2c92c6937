package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const maxSourceLength = 120

// Statistics represents the collected request statistics
type Statistics struct {
	UniqueVisitors   map[string]time.Time `json:"uniqueVisitors"`   // IP -> Last Visit Time
	AnalysisRequests int                  `json:"analysisRequests"` // Total number of analysis requests
	ErrorCount       int                  `json:"errorCount"`
	PopularSources   map[string]int       `json:"popularSources"` // Source -> Count
	AverageLoadTime  float64              `json:"averageLoadTime"`
	TotalLoadTime    float64              `json:"-"`
	RequestCount     int                  `json:"-"`
	LastPersisted    time.Time            `json:"lastPersisted"`

	path    string
	devMode bool
	mutex   sync.RWMutex
}

// NewStatistics creates statistics persisted at path, loading what is already there
func NewStatistics(path string, devMode bool) (*Statistics, error) {
	s := &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		PopularSources: make(map[string]int),
		LastPersisted:  time.Now(),
		path:           path,
		devMode:        devMode,
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// cleanSource reduces a client supplied source label (post ID, slug or title)
// to a short lower-case key
func cleanSource(source string) string {
	source = strings.ToLower(strings.Join(strings.Fields(source), " "))
	if utf8.RuneCountInString(source) > maxSourceLength {
		source = string([]rune(source)[:maxSourceLength])
	}
	return source
}

// TrackAnalysis records an analysis request
func (s *Statistics) TrackAnalysis(source string, loadTime float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AnalysisRequests++

	if cleaned := cleanSource(source); cleaned != "" {
		s.PopularSources[cleaned]++
	}

	if hasError {
		s.ErrorCount++
	}

	s.TotalLoadTime += loadTime
	s.RequestCount++
	s.AverageLoadTime = s.TotalLoadTime / float64(s.RequestCount)
}

// TotalRequests returns the number of tracked analysis requests
func (s *Statistics) TotalRequests() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.AnalysisRequests
}

func (s *Statistics) uniqueVisitorsCount() int {
	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}
	return count
}

// popularSources returns the n most analyzed sources
func (s *Statistics) popularSources(n int) map[string]int {
	sources := make([]string, 0, len(s.PopularSources))
	for source := range s.PopularSources {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(i, j int) bool {
		if s.PopularSources[sources[i]] != s.PopularSources[sources[j]] {
			return s.PopularSources[sources[i]] > s.PopularSources[sources[j]]
		}
		return sources[i] < sources[j]
	})
	if len(sources) > n {
		sources = sources[:n]
	}

	result := make(map[string]int, len(sources))
	for _, source := range sources {
		result[source] = s.PopularSources[source]
	}
	return result
}

func (s *Statistics) errorRate() float64 {
	if s.AnalysisRequests == 0 {
		return 0
	}
	return (float64(s.ErrorCount) / float64(s.AnalysisRequests)) * 100
}

// Save persists the statistics to a file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("could not create statistics file: %w", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %w", err)
	}

	return nil
}

// Load reads the statistics from a file
func (s *Statistics) Load() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("could not open statistics file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %w", err)
	}

	return nil
}

// GetStatistics returns a summary of the current statistics. Popular sources
// are only included in development mode.
func (s *Statistics) GetStatistics() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := map[string]interface{}{
		"uniqueVisitors24h": s.uniqueVisitorsCount(),
		"totalRequests":     s.AnalysisRequests,
		"errorRate":         s.errorRate(),
		"averageLoadTime":   s.AverageLoadTime,
	}
	if s.devMode {
		result["popularSources"] = s.popularSources(5)
	}
	return result
}
