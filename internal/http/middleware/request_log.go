package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuscms/backend/internal/platform/ctxutil"
	"github.com/campuscms/backend/internal/platform/logger"
	"github.com/campuscms/backend/internal/tenant"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		fields = append(fields, ctxutil.RequestMetaFrom(c.Request.Context()).LogFields()...)
		if tc, err := tenant.FromContext(c.Request.Context()); err == nil {
			if tc.UserID != uuid.Nil {
				fields = append(fields, "user_id", tc.UserID.String())
			}
			if tc.InstitutionID != uuid.Nil {
				fields = append(fields, "institution_id", tc.InstitutionID.String())
			}
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
