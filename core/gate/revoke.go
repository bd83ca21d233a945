package gate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nickearl/authgate/core/credstore"
	"github.com/nickearl/authgate/core/session"
	"github.com/nickearl/authgate/integration/google"
)

// Revoke executes the credential revocation flow for the session and returns
// a plain-text status message with an HTTP status code. 400 means the user
// can retry or ignore; 500 is an operator-visible failure. On success both
// the cached credential record and the local session are cleared; on a
// provider-reported failure all state is kept so the user can retry. Errors
// never propagate beyond the returned status.
func (g *Gate) Revoke(ctx context.Context, sess *session.Session) (message string, status int) {
	defer func() {
		switch status {
		case http.StatusOK:
			g.metrics.IncrementRevocations("ok")
		case http.StatusBadRequest:
			g.metrics.IncrementRevocations("rejected")
		default:
			g.metrics.IncrementRevocations("failed")
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			g.logger.ErrorContext(ctx, "revocation panicked", slog.Any("panic", r))
			message = "revocation failed: internal error"
			status = http.StatusInternalServerError
		}
	}()

	if sess == nil || sess.ID == uuid.Nil {
		return "no active session", http.StatusBadRequest
	}

	sessionID := sess.ID.String()

	rec, err := g.creds.Load(ctx, sessionID)
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to load credential record for revocation",
			slog.String("session_id", sessionID), slog.Any("error", err))
		return "revocation failed: " + err.Error(), http.StatusInternalServerError
	}
	if rec == nil {
		sess.Clear()
		return "no credentials found", http.StatusBadRequest
	}

	tok := rec.ProviderToken
	if tok == nil || tok.AccessToken == "" {
		g.logger.ErrorContext(ctx, "credential record missing provider token",
			slog.String("session_id", sessionID))
		return "credential record is missing a provider token", http.StatusInternalServerError
	}

	if tok.Expired() && tok.RefreshToken != "" {
		refreshed, err := g.provider.Refresh(ctx, tok)
		if err != nil {
			g.logger.ErrorContext(ctx, "failed to refresh token for revocation",
				slog.String("session_id", sessionID), slog.Any("error", err))
			return "revocation failed: " + err.Error(), http.StatusInternalServerError
		}

		rec.ProviderToken = refreshed
		if err := g.creds.Save(ctx, sessionID, credstore.Record{
			UserInfo:      rec.UserInfo,
			ProviderToken: refreshed,
		}); err != nil {
			g.logger.ErrorContext(ctx, "failed to persist refreshed token",
				slog.String("session_id", sessionID), slog.Any("error", err))
			return "revocation failed: " + err.Error(), http.StatusInternalServerError
		}

		tok = refreshed
	}

	if err := g.provider.Revoke(ctx, tok.AccessToken); err != nil {
		var revErr *google.RevocationError
		if errors.As(err, &revErr) {
			g.logger.WarnContext(ctx, "provider rejected revocation",
				slog.String("session_id", sessionID),
				slog.Int("provider_status", revErr.StatusCode),
				slog.String("detail", revErr.Detail))
			if revErr.Detail != "" {
				return "revocation rejected by provider: " + revErr.Detail, http.StatusBadRequest
			}
			return "revocation rejected by provider", http.StatusBadRequest
		}

		g.logger.ErrorContext(ctx, "revocation call failed",
			slog.String("session_id", sessionID), slog.Any("error", err))
		return "revocation failed: " + err.Error(), http.StatusInternalServerError
	}

	if err := g.creds.Delete(ctx, sessionID); err != nil {
		g.logger.ErrorContext(ctx, "failed to delete credential record after revocation",
			slog.String("session_id", sessionID), slog.Any("error", err))
		return "revocation failed: " + err.Error(), http.StatusInternalServerError
	}

	sess.Clear()

	g.logger.InfoContext(ctx, "credentials revoked",
		slog.String("session_id", sessionID))

	return "credentials revoked", http.StatusOK
}
