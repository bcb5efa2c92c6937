package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seo-optimizer/swissseo/logging"
)

// SourceKey is the gin context key under which handlers store the source
// label of an analysis request
const SourceKey = "analysis_source"

// saveEvery persists the statistics after this many analysis requests
const saveEvery = 100

// StatsMiddleware tracks visitors and analysis requests
func StatsMiddleware(stats *logging.Statistics, analyzePath string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		// Only track analysis requests
		if c.FullPath() != analyzePath || c.Request.Method != http.MethodPost {
			return
		}

		loadTime := float64(time.Since(start).Milliseconds())
		stats.TrackAnalysis(c.GetString(SourceKey), loadTime, c.Writer.Status() >= http.StatusBadRequest)

		if stats.TotalRequests()%saveEvery == 0 {
			go func() {
				if err := stats.Save(); err != nil {
					logger.Warn("failed to save request statistics", zap.Error(err))
				}
			}()
		}
	}
}
