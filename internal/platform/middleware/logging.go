package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Bahjat/castify/internal/platform/metrics"
	"github.com/Bahjat/castify/internal/platform/requestid"
	"github.com/sebest/xff"
)

const unmatchedPattern = "unmatched"

// Logging returns middleware that logs the method, path, status code, duration,
// client address and request ID for every HTTP request, and counts it in
// metrics.HTTPRequests. It must wrap the ServeMux directly (or through
// handlers that do not clone the request) so the matched route pattern is
// visible once the handler returns.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			pattern := r.Pattern
			if pattern == "" {
				pattern = unmatchedPattern
			}
			metrics.HTTPRequests.WithLabelValues(pattern, r.Method, strconv.Itoa(rw.status)).Inc()

			lvl := slog.LevelInfo
			switch {
			case rw.status >= 500:
				lvl = slog.LevelError
			case rw.status >= 400:
				lvl = slog.LevelWarn
			}

			logger.Log(r.Context(), lvl, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.status,
				"bytes", rw.bytes,
				"duration", time.Since(start).String(),
				"remote_addr", xff.GetRemoteAddr(r),
				"user_agent", r.UserAgent(),
				requestid.Attr(r.Context()),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code and
// response size.
type responseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Flush implements http.Flusher by delegating to the wrapped ResponseWriter
// if it supports flushing.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
