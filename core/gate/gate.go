package gate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nickearl/authgate/core/credstore"
	"github.com/nickearl/authgate/core/metrics"
	"github.com/nickearl/authgate/core/session"
)

// Decision is the outcome of an authorization check. It is an explicit
// result type so callers can distinguish redirect-to-login from hard-reject.
type Decision int

const (
	// Authorized means the visitor passed every check and the session now
	// carries a user record.
	Authorized Decision = iota
	// NotLoggedIn means the visitor has no valid provider session; callers
	// typically redirect into the login flow.
	NotLoggedIn
	// ForbiddenDomain means the visitor authenticated with an email outside
	// the allow-list; callers must reject, never redirect back into login.
	ForbiddenDomain
	// ProviderError means a provider call failed during the check.
	ProviderError
)

// String implements the fmt.Stringer interface.
func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case NotLoggedIn:
		return "not_logged_in"
	case ForbiddenDomain:
		return "forbidden_domain"
	case ProviderError:
		return "provider_error"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Provider is the slice of the identity provider client the gate uses,
// satisfied by the Google integration client.
type Provider interface {
	Userinfo(ctx context.Context, tok *session.ProviderToken) (session.Profile, error)
	Refresh(ctx context.Context, tok *session.ProviderToken) (*session.ProviderToken, error)
	Revoke(ctx context.Context, accessToken string) error
}

// Credentials is the slice of the credential store the gate uses, satisfied
// by the credstore package.
type Credentials interface {
	Save(ctx context.Context, sessionID string, rec credstore.Record) error
	Load(ctx context.Context, sessionID string) (*credstore.Record, error)
	Delete(ctx context.Context, sessionID string) error
}

// Gate enforces the domain allow-list and manages the credential lifecycle
// around provider logins. Safe for concurrent use; all mutable state lives
// on the request's session and in the credential store.
type Gate struct {
	provider Provider
	creds    Credentials
	enabled  bool
	domains  []string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Option is a functional option for configuring the gate.
type Option func(*Gate)

// WithEnabled toggles federated login enforcement. When disabled the gate
// authorizes everything and never touches the provider or the store.
func WithEnabled(enabled bool) Option {
	return func(g *Gate) {
		g.enabled = enabled
	}
}

// WithAuthorizedDomains sets the global email-domain allow-list. An empty
// list admits every authenticated domain.
func WithAuthorizedDomains(domains []string) Option {
	return func(g *Gate) {
		g.domains = g.domains[:0]
		for _, d := range domains {
			if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
				g.domains = append(g.domains, d)
			}
		}
	}
}

// WithLogger sets the gate's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus metrics. A nil value records nothing.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

// New creates an authorization gate. Federated login is enabled by default.
func New(provider Provider, creds Credentials, opts ...Option) *Gate {
	g := &Gate{
		provider: provider,
		creds:    creds,
		enabled:  true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// NewFromConfig creates a Gate from configuration.
func NewFromConfig(cfg Config, provider Provider, creds Credentials, opts ...Option) *Gate {
	configOpts := []Option{
		WithEnabled(cfg.Enabled),
		WithAuthorizedDomains(cfg.AuthorizedDomains),
	}
	return New(provider, creds, append(configOpts, opts...)...)
}

// Enabled reports whether federated login enforcement is active.
func (g *Gate) Enabled() bool {
	return g.enabled
}

// CheckAuthorization validates the current provider session, enforces the
// domain allow-list, and on success persists the credential record and
// populates the session's user record. It never initiates a login redirect;
// acting on the decision is the caller's responsibility. Any failure maps to
// a non-Authorized decision rather than an error.
func (g *Gate) CheckAuthorization(ctx context.Context, sess *session.Session) (decision Decision) {
	if !g.enabled {
		return Authorized
	}

	if !sess.IsAuthenticated() {
		g.metrics.IncrementAuthDenied(NotLoggedIn.String())
		return NotLoggedIn
	}

	defer func() {
		if r := recover(); r != nil {
			g.logger.ErrorContext(ctx, "authorization check panicked",
				slog.Any("panic", r))
			decision = ProviderError
		}
		if decision != Authorized {
			g.metrics.IncrementAuthDenied(decision.String())
		}
	}()

	profile, err := g.provider.Userinfo(ctx, sess.Token)
	if err != nil {
		g.logger.WarnContext(ctx, "failed to fetch userinfo",
			slog.Any("error", err))
		return ProviderError
	}

	if !g.domainAllowed(profile.EmailDomain()) {
		g.logger.InfoContext(ctx, "login rejected, domain not allow-listed",
			slog.String("domain", profile.EmailDomain()))
		return ForbiddenDomain
	}

	sessionID := sess.EnsureID()

	rec := credstore.Record{
		UserInfo:      profile,
		ProviderToken: sess.Token,
	}
	if err := g.creds.Save(ctx, sessionID.String(), rec); err != nil {
		g.logger.ErrorContext(ctx, "failed to persist credential record",
			slog.String("session_id", sessionID.String()), slog.Any("error", err))
		return ProviderError
	}

	sess.SetUser(profile.User())

	g.metrics.IncrementLogins()

	g.logger.InfoContext(ctx, "login authorized",
		slog.String("session_id", sessionID.String()),
		slog.String("domain", profile.EmailDomain()))

	return Authorized
}

// IsAppAuthenticated reports whether the request carries valid credentials.
// It checks the session's in-process token first and falls back to
// rehydrating from the credential store on miss. Store misses and transport
// failures both report false.
func (g *Gate) IsAppAuthenticated(ctx context.Context, sess *session.Session) bool {
	if !g.enabled {
		return true
	}

	if sess.IsAuthenticated() {
		return true
	}

	rec, err := g.creds.Load(ctx, sess.ID.String())
	if err != nil {
		g.logger.WarnContext(ctx, "failed to load credential record",
			slog.String("session_id", sess.ID.String()), slog.Any("error", err))
		return false
	}
	if rec == nil || rec.ProviderToken == nil || rec.ProviderToken.AccessToken == "" {
		g.metrics.IncrementCacheMisses()
		return false
	}

	sess.SetToken(rec.ProviderToken)
	sess.SetUser(rec.UserInfo.User())

	return true
}

// IsPageAuthenticated reports whether the request is authenticated and, when
// a per-page email allow-list is given, whether the session user is on it.
// The page list is checked against exact lowercased emails, distinct from
// the global domain allow-list.
func (g *Gate) IsPageAuthenticated(ctx context.Context, sess *session.Session, emails []string) bool {
	if !g.enabled {
		return true
	}

	if !g.IsAppAuthenticated(ctx, sess) {
		return false
	}

	if len(emails) == 0 {
		return true
	}

	if sess.User == nil {
		return false
	}

	userEmail := strings.ToLower(sess.User.Email)
	for _, e := range emails {
		if strings.ToLower(strings.TrimSpace(e)) == userEmail {
			return true
		}
	}

	return false
}

// domainAllowed reports whether the domain passes the allow-list. An empty
// allow-list admits everything.
func (g *Gate) domainAllowed(domain string) bool {
	if len(g.domains) == 0 {
		return true
	}
	for _, d := range g.domains {
		if d == domain {
			return true
		}
	}
	return false
}
