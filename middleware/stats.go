package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/aeo-auditor/backend/stats"
)

// UsageStats records each client visit in the statistics storage.
func UsageStats(storage *stats.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		storage.RecordVisit(c.ClientIP())
		c.Next()
	}
}
