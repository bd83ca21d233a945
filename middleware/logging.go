package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nickearl/authgate/core/logger"
)

// Logging logs every completed request with method, path, status, and
// duration. The request id, when present, is attached for correlation.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			attrs := []any{
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(sw.status),
				logger.Duration(time.Since(start)),
			}
			if requestID, ok := GetRequestID(r.Context()); ok {
				attrs = append(attrs, logger.RequestID(requestID))
			}

			log.InfoContext(r.Context(), "request completed", attrs...)
		})
	}
}

// statusWriter captures the response status code for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
