package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// CustomLoggerMiddleware logs one line per request through slog. It logs the matched
// route pattern rather than the raw path, so access tokens never reach the logs.
// Sampled requests also carry the trace id. A panicking handler is logged as a 500
// and the panic is passed on to the recovery middleware.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if r := recover(); r != nil {
				logRequest(c, logger, start, http.StatusInternalServerError)
				panic(r)
			}
		}()

		c.Next()

		logRequest(c, logger, start, c.Writer.Status())
	}
}

func logRequest(c *gin.Context, logger *slog.Logger, start time.Time, status int) {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}

	attrs := []slog.Attr{
		slog.String("request_id", requestid.Get(c)),
		slog.String("method", c.Request.Method),
		slog.String("route", route),
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
		slog.String("client_ip", c.ClientIP()),
	}
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
		attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
	}

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.LogAttrs(c.Request.Context(), level, "http request", attrs...)
}
