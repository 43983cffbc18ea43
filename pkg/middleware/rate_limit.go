package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripgenie/pkg/memcache"
	"tripgenie/pkg/utils"
)

// RateLimit allows limit requests per client IP in each fixed window. When the
// counter store fails the request is let through and the failure logged.
func RateLimit(store memcache.CounterStore, limit int64, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		count, err := store.Increment(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn("rate limit counter unavailable",
				zap.String("trace_id", c.GetString(ContextTraceID)),
				zap.Error(err))
			c.Next()
			return
		}
		if count > limit {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests. Please try again in a minute.")
			c.Abort()
			return
		}
		c.Next()
	}
}
