package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/examhub-lk/examhub-api/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics observes every request under its route template so /documents/:id style paths share one
// series. Scrapes of skipRoutes are not observed.
func Metrics(metrics *service.MetricsService, skipRoutes ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipRoutes))
	for _, route := range skipRoutes {
		skip[route] = struct{}{}
	}
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		if _, ok := skip[route]; ok {
			return
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
