package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"event-judging/internal/metrics"
)

// responseWriter wraps http.ResponseWriter to capture status code and response body
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
	body       *bytes.Buffer
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	if rw.body != nil {
		rw.body.Write(b)
	}
	return rw.ResponseWriter.Write(b)
}

// LoggingMiddleware logs every request and records its duration.
//
// Log levels:
// - INFO: method, path, status and duration of each request
// - DEBUG: additionally the request and response bodies
// - WARN: requests answered with 4xx
// - ERROR: requests answered with 5xx
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		debug := slog.Default().Enabled(r.Context(), slog.LevelDebug)

		var requestBody []byte
		if debug && r.Body != nil {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		if debug {
			wrapped.body = &bytes.Buffer{}
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)

		// the registered pattern keeps path label cardinality bounded
		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.APIRequestDuration.WithLabelValues(pattern, r.Method, strconv.Itoa(wrapped.statusCode)).Observe(duration.Seconds())

		level := slog.LevelInfo
		message := "Request completed"
		switch {
		case wrapped.statusCode >= 500:
			level = slog.LevelError
			message = "Request failed with error"
		case wrapped.statusCode >= 400:
			level = slog.LevelWarn
			message = "Request failed"
		}

		attrs := []any{
			"remote_ip", getIP(r, false),
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration_ms", duration.Milliseconds(),
		}
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			attrs = append(attrs, "forwarded_for", forwarded)
		}
		if userID, ok := GetUserID(r); ok {
			attrs = append(attrs, "user_id", userID)
		}
		if debug {
			if len(requestBody) > 0 {
				attrs = append(attrs, "request_body", string(requestBody))
			}
			if wrapped.body.Len() > 0 {
				attrs = append(attrs, "response_body", wrapped.body.String())
			}
		}

		slog.Log(r.Context(), level, message, attrs...)
	})
}
