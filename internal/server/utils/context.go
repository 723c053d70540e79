package utils

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SpanContextKey = "span_context"
	RequestIDKey   = "request_id"
)

// RequestContext returns the traced context stored by the telemetry
// middleware, falling back to the request's own context.
func RequestContext(c *gin.Context) context.Context {
	if v, ok := c.Get(SpanContextKey); ok {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return c.Request.Context()
}

func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RequestLogger tags base with the request id when one is set.
func RequestLogger(c *gin.Context, base *zap.Logger) *zap.Logger {
	if id := RequestID(c); id != "" {
		return base.With(zap.String(RequestIDKey, id))
	}
	return base
}
