package middleware

import (
	"bufio"
	"net"
	"net/http"
	"time"

	"github.com/turtacn/ChemSDS/pkg/errors"

	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
)

// LoggingConfig controls the request logging middleware.
type LoggingConfig struct {
	// SkipPaths are not logged, cutting probe and scrape noise.
	SkipPaths []string

	// SlowThreshold promotes slower requests to Warn level.
	SlowThreshold time.Duration
}

// DefaultLoggingConfig skips probe endpoints and flags requests over 3s.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		SkipPaths:     []string{"/healthz", "/readyz", "/metrics"},
		SlowThreshold: 3 * time.Second,
	}
}

// responseRecorder captures the status code and bytes written.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (w *responseRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

func (w *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, errors.New(errors.ErrCodeInternal, "response writer does not support hijacking")
}

func (w *responseRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// LoggingMiddleware logs one structured line per request.
type LoggingMiddleware struct {
	logger logging.Logger
	config LoggingConfig
	skip   map[string]bool
}

func NewLoggingMiddleware(logger logging.Logger, config LoggingConfig) *LoggingMiddleware {
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}
	return &LoggingMiddleware{logger: logger, config: config, skip: skip}
}

func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skip[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		recorder := newResponseRecorder(w)
		next.ServeHTTP(recorder, r)
		duration := time.Since(start)

		fields := []logging.Field{
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", recorder.status),
			logging.Duration("duration", duration),
			logging.Int64("bytes", recorder.bytes),
			logging.String("remote_addr", r.RemoteAddr),
		}
		if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
			fields = append(fields, logging.String("request_id", requestID))
		}

		switch {
		case recorder.status >= 500:
			m.logger.Error("HTTP request completed", fields...)
		case recorder.status >= 400:
			m.logger.Warn("HTTP request completed", fields...)
		case m.config.SlowThreshold > 0 && duration >= m.config.SlowThreshold:
			m.logger.Warn("HTTP request completed (slow)", fields...)
		default:
			m.logger.Info("HTTP request completed", fields...)
		}
	})
}

//Personal.AI order the ending
