package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"teecole/internal/pkg/response"
)

// RequestLogger writes one entry per request.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := requestFields(log, c, start)
		status := c.Writer.Status()
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request")
		case status >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// ErrorLogger recovers panics into a generic 500 and logs every error
// handlers attached with c.Error.
func ErrorLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				requestFields(log, c, start).
					WithField("panic", fmt.Sprintf("%v", recovered)).
					WithField("stack", string(debug.Stack())).
					Error("panic recovered")
				response.AbortError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				return
			}

			for _, err := range c.Errors {
				entry := requestFields(log, c, start).WithError(err.Err)
				if err.Meta != nil {
					entry = entry.WithField("meta", err.Meta)
				}
				entry.Error("request error")
			}
		}()

		c.Next()
	}
}

func requestFields(log logrus.FieldLogger, c *gin.Context, start time.Time) logrus.FieldLogger {
	fields := logrus.Fields{
		"status":    c.Writer.Status(),
		"method":    c.Request.Method,
		"path":      c.Request.URL.Path,
		"client_ip": c.ClientIP(),
		"latency":   time.Since(start).String(),
	}
	if q := c.Request.URL.RawQuery; q != "" {
		fields["query"] = q
	}
	if id := c.GetInt64("user_id"); id != 0 {
		fields["user_id"] = id
	}
	if rid := requestID(c); rid != "" {
		fields["request_id"] = rid
	}
	return log.WithFields(fields)
}

func requestID(c *gin.Context) string {
	return c.GetHeader("X-Request-ID")
}
