package api

import (
	"context"  // Context for store and Redis operations
	"net/http" // HTTP status codes

	"inventory_system/internal/domain" // Importing domain models
	"inventory_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const dashboardCacheKey = cachePrefix + "dashboard"

// SummaryReader computes the dashboard counters
type SummaryReader interface {
	Summary(ctx context.Context) (domain.Summary, error)
}

// dashboardResponse is the body of GET /dashboard
type dashboardResponse struct {
	Msg    string         `json:"msg"`    // Status message
	Data   domain.Summary `json:"data"`   // Counters
	Cached bool           `json:"cached"` // Indicate response is from cache
}

// DashboardHandler returns the number of kategori, barang and detail_barang rows
func DashboardHandler(src SummaryReader, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached dashboardResponse
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, dashboardCacheKey, &cached); err == nil && found {
			cached.Cached = true
			c.JSON(http.StatusOK, cached)
			return
		}
		summary, err := src.Summary(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		resp := dashboardResponse{Msg: "Successfully get dashboard", Data: summary}
		// Cache the counters for future requests
		if err := utils.SetCache(ctx, rdb, dashboardCacheKey, resp, cacheTTL); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to cache dashboard")
		}
		c.JSON(http.StatusOK, resp)
	}
}

// PingHandler is the liveness check
func PingHandler(c *gin.Context) {
	c.String(http.StatusOK, "Pong!")
}
