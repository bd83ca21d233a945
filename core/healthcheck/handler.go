package healthcheck

import (
	"context"
	"io"
	"log/slog"
	"net/http"
)

// Handler creates the health probe handler. It executes each dependency
// check in sequence and reports 200 "ok" when all pass, or 503 "degraded"
// when any fails. With no checks supplied it acts as a pure liveness probe.
//
// Dependency checks follow the func(context.Context) error signature:
//
//	healthHandler := healthcheck.Handler(logger,
//		redis.Healthcheck(redisClient),
//	)
//	r.Get("/healthz", healthHandler)
func Handler(logger *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				logger.ErrorContext(r.Context(), "health check failed",
					slog.Any("error", err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("degraded"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
