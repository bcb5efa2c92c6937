// Package server exposes the content analyzer over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/seo-optimizer/swissseo/analyzer"
	"github.com/seo-optimizer/swissseo/history"
	"github.com/seo-optimizer/swissseo/logging"
	"github.com/seo-optimizer/swissseo/middleware"
	"github.com/seo-optimizer/swissseo/stats"
)

const analyzePath = "/api/analyze"

// HistoryStore persists finished reports
type HistoryStore interface {
	Save(ctx context.Context, rec history.Record) (history.Record, error)
	Get(ctx context.Context, id string) (history.Record, error)
	Recent(ctx context.Context, limit int) ([]history.Record, error)
	Count(ctx context.Context) (int, error)
}

// CacheCounters exposes the persisted monthly cache counters
type CacheCounters interface {
	GetCurrentStats() stats.MonthlyStats
	GetAllMonths() []string
	GetMonthlyStats(yearMonth string) (stats.MonthlyStats, bool)
}

// Config wires the collaborators of the server
type Config struct {
	Analyzer    *analyzer.Analyzer
	History     HistoryStore
	Counters    CacheCounters
	Statistics  *logging.Statistics
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

// Server holds the gin engine and the handlers' dependencies
type Server struct {
	analyzer   *analyzer.Analyzer
	history    HistoryStore
	counters   CacheCounters
	statistics *logging.Statistics
	logger     *zap.Logger
	tracer     trace.Tracer
	engine     *gin.Engine
}

// New builds the server and registers all routes
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		analyzer:   cfg.Analyzer,
		history:    cfg.History,
		counters:   cfg.Counters,
		statistics: cfg.Statistics,
		logger:     logger,
		tracer:     otel.Tracer("github.com/seo-optimizer/swissseo/server"),
		engine:     gin.New(),
	}

	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.ErrorHandler(logger))
	s.engine.Use(middleware.RequestLogger(logger))
	if cfg.RateLimiter != nil {
		s.engine.Use(cfg.RateLimiter.RateLimit())
	}
	s.engine.Use(middleware.CORS())
	if cfg.Statistics != nil {
		s.engine.Use(middleware.StatsMiddleware(cfg.Statistics, analyzePath, logger))
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// Content analysis endpoints
		api.POST("/analyze", s.analyzeContent)
		api.POST("/meta", s.evaluateMeta)

		// Cache endpoints
		api.GET("/cache", s.cacheStats)
		api.DELETE("/cache", s.clearCache)

		api.GET("/statistics", s.requestStatistics)

		api.GET("/history", s.recentHistory)
		api.GET("/history/:id", s.historyRecord)
	}
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.engine
}
