package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextTraceID = "trace_id"
	HeaderTraceID  = "X-Trace-ID"
)

// TraceIDMiddleware reuses a well-formed inbound X-Trace-ID so a trace can span
// the browser and the API, and mints one otherwise.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(HeaderTraceID)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Set(ContextTraceID, traceID)
		c.Writer.Header().Set(HeaderTraceID, traceID)
		c.Next()
	}
}
