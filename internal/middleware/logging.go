// internal/middleware/logging.go
//
// Structured request logging.  Captures method, path, status, response
// size, duration, request ID, and remote address.  Paths never contain
// credentials; bodies are never logged.
package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Logger logs every request through the global zap logger.  4xx responses
// log at warn, 5xx at error.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration_ms", float64(time.Since(start).Microseconds()) / 1000.0,
			"bytes", ww.bytes,
			"request_id", GetRequestID(r.Context()),
			"remote_addr", r.RemoteAddr,
		}
		switch {
		case ww.status >= 500:
			zap.S().Errorw("request", fields...)
		case ww.status >= 400:
			zap.S().Warnw("request", fields...)
		default:
			zap.S().Infow("request", fields...)
		}
	})
}

// responseWriter captures the status code and bytes written.
type responseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap returns the underlying ResponseWriter, required for http.Flusher
// and other interface assertions through middleware chains.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
