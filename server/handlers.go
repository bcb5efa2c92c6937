package server

import (
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/seo-optimizer/swissseo/analyzer"
	"github.com/seo-optimizer/swissseo/history"
	"github.com/seo-optimizer/swissseo/middleware"
	"github.com/seo-optimizer/swissseo/stats"
)

const (
	// maxContentBytes limits the size of submitted content
	maxContentBytes = 1 << 20
	maxTitleBytes   = 4 << 10

	// maxBodyBytes leaves room for the other request fields
	maxBodyBytes = maxContentBytes + 64<<10
)

// monthCounters is one month of persisted cache counters
type monthCounters struct {
	Month string `json:"month"`
	stats.MonthlyStats
}

type analyzeRequest struct {
	Content string `json:"content" binding:"required"`
	Title   string `json:"title"`
	Source  string `json:"source"`
}

type metaRequest struct {
	Content         string `json:"content" binding:"required"`
	Title           string `json:"title"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	FocusKeyword    string `json:"focus_keyword"`
}

func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error": message,
	})
}

// bindJSON decodes a size limited request body, answering 413 for bodies
// over maxBodyBytes and 400 for anything else that fails to bind
func bindJSON(c *gin.Context, request any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	if err := c.ShouldBindJSON(request); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(c, http.StatusRequestEntityTooLarge, "Request body is too large")
			return false
		}
		errorResponse(c, http.StatusBadRequest, "Invalid request: content is required")
		return false
	}
	return true
}

func validText(c *gin.Context, field, value string, maxBytes int) bool {
	if len(value) > maxBytes {
		errorResponse(c, http.StatusRequestEntityTooLarge, field+" is too large")
		return false
	}
	if !utf8.ValidString(value) {
		errorResponse(c, http.StatusBadRequest, field+" must be valid UTF-8")
		return false
	}
	return true
}

func validInput(c *gin.Context, content, title string) bool {
	return validText(c, "Content", content, maxContentBytes) &&
		validText(c, "Title", title, maxTitleBytes)
}

func (s *Server) analyzeContent(c *gin.Context) {
	var request analyzeRequest
	if !bindJSON(c, &request) || !validInput(c, request.Content, request.Title) {
		return
	}

	source := request.Source
	if source == "" {
		source = request.Title
	}
	c.Set(middleware.SourceKey, source)

	ctx, span := s.tracer.Start(c.Request.Context(), "analyzer.analyze")
	defer span.End()

	cached := s.analyzer.IsCached(request.Content, request.Title)
	analysis := s.analyzer.AnalyzeContent(request.Content, request.Title)
	report := s.analyzer.CalculateSEOScore(analysis)
	span.SetAttributes(
		attribute.Int("analysis.word_count", analysis.WordCount),
		attribute.Int("analysis.seo_score", report.Score),
		attribute.Bool("analysis.cached", cached),
	)

	rec, err := s.history.Save(ctx, history.Record{
		Source:   source,
		Analysis: analysis,
		Report:   report,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "history save failed")
		s.logger.Error("failed to save analysis",
			zap.Error(err), zap.String("request_id", c.GetString(middleware.RequestIDKey)))
		errorResponse(c, http.StatusInternalServerError, "Failed to store analysis")
		return
	}

	s.logger.Debug("content analyzed",
		zap.String("id", rec.ID),
		zap.Int("words", analysis.WordCount),
		zap.Int("score", report.Score),
		zap.Bool("cached", cached))

	c.JSON(http.StatusOK, gin.H{
		"id":       rec.ID,
		"analysis": analysis,
		"seo":      report,
	})
}

func (s *Server) evaluateMeta(c *gin.Context) {
	var request metaRequest
	if !bindJSON(c, &request) || !validInput(c, request.Content, request.Title) {
		return
	}

	analysis := s.analyzer.AnalyzeContent(request.Content, request.Title)
	meta := analyzer.EvaluateMeta(analyzer.MetaSuggestion{
		Title:        request.MetaTitle,
		Description:  request.MetaDescription,
		FocusKeyword: request.FocusKeyword,
	}, analysis)

	c.JSON(http.StatusOK, gin.H{
		"analysis": analysis,
		"meta":     meta,
	})
}

func (s *Server) cacheStats(c *gin.Context) {
	response := gin.H{
		"cache": s.analyzer.GetCacheStats(),
	}
	if s.counters != nil {
		response["monthly"] = s.counters.GetCurrentStats()

		months := make([]monthCounters, 0)
		for _, month := range s.counters.GetAllMonths() {
			if counters, ok := s.counters.GetMonthlyStats(month); ok {
				months = append(months, monthCounters{Month: month, MonthlyStats: counters})
			}
		}
		response["months"] = months
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) clearCache(c *gin.Context) {
	s.analyzer.ClearCache()
	c.JSON(http.StatusOK, gin.H{
		"status": "cleared",
	})
}

func (s *Server) requestStatistics(c *gin.Context) {
	if s.statistics == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, s.statistics.GetStatistics())
}

func (s *Server) recentHistory(c *gin.Context) {
	limit := history.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			errorResponse(c, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}

	records, err := s.history.Recent(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("failed to load history", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to load history")
		return
	}
	total, err := s.history.Count(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to count history", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to load history")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   total,
	})
}

func (s *Server) historyRecord(c *gin.Context) {
	rec, err := s.history.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, history.ErrNotFound) {
		errorResponse(c, http.StatusNotFound, "Analysis not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to load analysis", zap.Error(err), zap.String("id", c.Param("id")))
		errorResponse(c, http.StatusInternalServerError, "Failed to load analysis")
		return
	}
	c.JSON(http.StatusOK, rec)
}
