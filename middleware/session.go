package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/nickearl/authgate/core/session"
)

type sessionContextKey struct{}

// Session creates the session bootstrapper middleware. It runs before any
// handler logic, loads the session from the signed cookie (creating a fresh
// one with a new identifier when absent or invalid), stores it in the
// request context, and rewrites the cookie when the response is written so
// the session stays durable. An existing identifier is never regenerated.
func Session(manager *session.Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := manager.Load(r)

			sw := &sessionWriter{
				ResponseWriter: w,
				manager:        manager,
				sess:           sess,
				logger:         logger,
				ctx:            r.Context(),
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
			next.ServeHTTP(sw, r.WithContext(ctx))

			// Handlers that wrote no response still get the cookie refreshed.
			sw.flushSession()
		})
	}
}

// GetSession retrieves the bootstrapped session from the request context.
// The boolean is false only for requests that bypassed the middleware.
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess, ok
}

// sessionWriter rewrites the session cookie just before the first byte of
// the response, so handler mutations made during the request are captured.
type sessionWriter struct {
	http.ResponseWriter
	manager *session.Manager
	sess    *session.Session
	logger  *slog.Logger
	ctx     context.Context
	flushed bool
}

func (w *sessionWriter) WriteHeader(code int) {
	w.flushSession()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.flushSession()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) flushSession() {
	if w.flushed {
		return
	}
	w.flushed = true

	if err := w.manager.Save(w.ResponseWriter, w.sess); err != nil {
		w.logger.ErrorContext(w.ctx, "failed to write session cookie",
			slog.Any("error", err))
	}
}
