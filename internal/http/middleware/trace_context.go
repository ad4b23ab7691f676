package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/campuscms/backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
)

// AttachRequestMeta assigns every request a request id and a trace id and
// echoes both back in the response headers. Callers may supply their own via
// the headers; otherwise the trace id comes from the active otel span and the
// request id is minted here.
func AttachRequestMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := &ctxutil.RequestMeta{
			TraceID:   inboundTraceID(c),
			RequestID: inboundRequestID(c),
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestMeta(c.Request.Context(), meta))
		c.Writer.Header().Set(headerTraceID, meta.TraceID)
		c.Writer.Header().Set(headerRequestID, meta.RequestID)
		c.Next()
	}
}

func inboundRequestID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(headerRequestID)); id != "" {
		return id
	}
	return uuid.New().String()
}

func inboundTraceID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(headerTraceID)); id != "" {
		return id
	}
	if spanCtx := trace.SpanContextFromContext(c.Request.Context()); spanCtx.HasTraceID() {
		return spanCtx.TraceID().String()
	}
	return uuid.New().String()
}
