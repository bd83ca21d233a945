package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickearl/authgate/app"
	"github.com/nickearl/authgate/core/credstore"
	"github.com/nickearl/authgate/core/gate"
	"github.com/nickearl/authgate/core/session"
)

type fakeProvider struct {
	profile     session.Profile
	userinfoErr error
	exchangeErr error
	token       *session.ProviderToken
	revokeErr   error
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.example/auth?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) Exchange(context.Context, string) (*session.ProviderToken, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	if p.token != nil {
		return p.token, nil
	}
	return &session.ProviderToken{
		AccessToken: "access-token",
		Expiry:      time.Now().Add(time.Hour),
	}, nil
}

func (p *fakeProvider) Userinfo(context.Context, *session.ProviderToken) (session.Profile, error) {
	if p.userinfoErr != nil {
		return session.Profile{}, p.userinfoErr
	}
	return p.profile, nil
}

func (p *fakeProvider) Refresh(_ context.Context, tok *session.ProviderToken) (*session.ProviderToken, error) {
	return tok, nil
}

func (p *fakeProvider) Revoke(context.Context, string) error {
	return p.revokeErr
}

type fakeCredentials struct {
	mu      sync.Mutex
	records map[string]credstore.Record
}

func newFakeCredentials() *fakeCredentials {
	return &fakeCredentials{records: map[string]credstore.Record{}}
}

func (c *fakeCredentials) Save(_ context.Context, sessionID string, rec credstore.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[sessionID] = rec
	return nil
}

func (c *fakeCredentials) Load(_ context.Context, sessionID string) (*credstore.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[sessionID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (c *fakeCredentials) Delete(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, sessionID)
	return nil
}

type fixture struct {
	app      *app.App
	provider *fakeProvider
	creds    *fakeCredentials
	handler  http.Handler
}

func newFixture(t *testing.T, cfg app.Config, gateOpts ...gate.Option) *fixture {
	t.Helper()

	sessions, err := session.NewManager([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)

	provider := &fakeProvider{profile: session.Profile{Email: "a@example.com", Name: "Alice"}}
	creds := newFakeCredentials()
	g := gate.New(provider, creds, gateOpts...)

	a, err := app.New(cfg, sessions, g, provider,
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	return &fixture{app: a, provider: provider, creds: creds, handler: a.Router()}
}

// browse replays cookies between requests like a browser would.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	b.t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)

	if fresh := rec.Result().Cookies(); len(fresh) > 0 {
		b.cookies = fresh
	}
	return rec
}

func TestLoginFlow(t *testing.T) {
	t.Parallel()

	t.Run("login redirects to provider with state", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, app.Config{})
		b := &browser{t: t, handler: f.handler}

		rec := b.get("/login")
		require.Equal(t, http.StatusFound, rec.Code)

		loc, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "provider.example", loc.Host)
		assert.NotEmpty(t, loc.Query().Get("state"))
	})

	t.Run("full login round trip", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, app.Config{}, gate.WithAuthorizedDomains([]string{"example.com"}))
		b := &browser{t: t, handler: f.handler}

		rec := b.get("/login")
		loc, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		state := loc.Query().Get("state")

		rec = b.get("/login/google/authorized?state=" + url.QueryEscape(state) + "&code=auth-code")
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login-success", rec.Header().Get("Location"))

		require.Len(t, f.creds.records, 1)
		for _, stored := range f.creds.records {
			assert.Equal(t, "a@example.com", stored.UserInfo.Email)
			assert.Equal(t, "access-token", stored.ProviderToken.AccessToken)
		}

		rec = b.get("/login-success")
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("state mismatch funnels back into login", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, app.Config{})
		b := &browser{t: t, handler: f.handler}

		b.get("/login")
		rec := b.get("/login/google/authorized?state=forged&code=auth-code")
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assert.Empty(t, f.creds.records)
	})

	t.Run("forbidden domain gets an explicit 403", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, app.Config{}, gate.WithAuthorizedDomains([]string{"acme.com"}))
		b := &browser{t: t, handler: f.handler}

		rec := b.get("/login")
		loc, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		state := loc.Query().Get("state")

		rec = b.get("/login/google/authorized?state=" + url.QueryEscape(state) + "&code=auth-code")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, f.creds.records)
	})

	t.Run("exchange failure funnels back into login", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, app.Config{})
		f.provider.exchangeErr = errors.New("invalid_grant")
		b := &browser{t: t, handler: f.handler}

		rec := b.get("/login")
		loc, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		state := loc.Query().Get("state")

		rec = b.get("/login/google/authorized?state=" + url.QueryEscape(state) + "&code=auth-code")
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("disabled gate sends login straight to the root", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, app.Config{}, gate.WithEnabled(false))
		b := &browser{t: t, handler: f.handler}

		rec := b.get("/login")
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("base path prefixes the auth routes", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, app.Config{BasePath: "/overview"})
		b := &browser{t: t, handler: f.handler}

		rec := b.get("/overview/login")
		require.Equal(t, http.StatusFound, rec.Code)

		rec = b.get("/login")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRevokeRoute(t *testing.T) {
	t.Parallel()

	t.Run("revoke without credentials reports 400", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, app.Config{})
		b := &browser{t: t, handler: f.handler}

		rec := b.get("/login/revoke")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "no credentials found", rec.Body.String())
	})

	t.Run("revoke after login clears the stored record", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, app.Config{})
		b := &browser{t: t, handler: f.handler}

		rec := b.get("/login")
		loc, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		state := loc.Query().Get("state")

		b.get("/login/google/authorized?state=" + url.QueryEscape(state) + "&code=auth-code")
		require.Len(t, f.creds.records, 1)

		rec = b.get("/login/revoke")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "credentials revoked", rec.Body.String())
		assert.Empty(t, f.creds.records)
	})
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	t.Run("healthy dependencies report ok without a session cookie", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, app.Config{})
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
		assert.Empty(t, rec.Result().Cookies(), "probes must not allocate sessions")
	})
}
