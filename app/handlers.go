package app

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nickearl/authgate/core/gate"
	"github.com/nickearl/authgate/core/logger"
	"github.com/nickearl/authgate/middleware"
)

// handleLogin starts the provider login flow: it records an anti-forgery
// state on the session and redirects to the provider's consent screen.
// With federated login disabled the visitor goes straight to the app root.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	if !a.gate.Enabled() {
		http.Redirect(w, r, a.rootPath(), http.StatusFound)
		return
	}

	state := uuid.New().String()
	sess.SetState(state)

	http.Redirect(w, r, a.provider.AuthCodeURL(state), http.StatusFound)
}

// handleCallback finalizes the provider callback: it verifies the
// anti-forgery state, exchanges the authorization code, and runs the
// authorization gate. Login failures funnel back into the provider login
// redirect rather than showing a raw error page; a rejected domain is the
// exception and gets an explicit 403.
func (a *App) handleCallback(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" || state != sess.ConsumeState() {
		a.logger.WarnContext(r.Context(), "callback state mismatch",
			logger.Component("callback"))
		http.Redirect(w, r, a.path("/login"), http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, a.path("/login"), http.StatusFound)
		return
	}

	tok, err := a.provider.Exchange(r.Context(), code)
	if err != nil {
		a.logger.WarnContext(r.Context(), "code exchange failed",
			logger.Component("callback"), logger.Error(err))
		http.Redirect(w, r, a.path("/login"), http.StatusFound)
		return
	}

	sess.SetToken(tok)

	switch a.gate.CheckAuthorization(r.Context(), sess) {
	case gate.Authorized:
		http.Redirect(w, r, a.path("/login-success"), http.StatusFound)
	case gate.ForbiddenDomain:
		sess.Clear()
		http.Error(w, "access restricted to authorized domains", http.StatusForbidden)
	default:
		http.Redirect(w, r, a.path("/login"), http.StatusFound)
	}
}

// handleLoginSuccess verifies the visitor ended up authorized and forwards
// them to the application root.
func (a *App) handleLoginSuccess(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	if !a.gate.IsAppAuthenticated(r.Context(), sess) {
		http.Redirect(w, r, a.path("/login"), http.StatusFound)
		return
	}

	http.Redirect(w, r, a.rootPath(), http.StatusFound)
}

// handleRevoke executes the revocation flow and reports its plain-text
// outcome. 400 means the user can retry or ignore; 500 is operator-visible.
func (a *App) handleRevoke(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	message, status := a.gate.Revoke(r.Context(), sess)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// rootPath is the application root the auth flow hands back to.
func (a *App) rootPath() string {
	if a.config.BasePath == "" {
		return "/"
	}
	return a.config.BasePath + "/"
}
