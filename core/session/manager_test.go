package session_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickearl/authgate/core/session"
)

const testSecret = "session-signing-secret-32-chars!"
const testSecret2 = "rotated-signing-secret-32-chars!"

func requestWithCookies(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNewManager(t *testing.T) {
	t.Parallel()

	t.Run("no secrets", func(t *testing.T) {
		t.Parallel()
		_, err := session.NewManager(nil)
		assert.ErrorIs(t, err, session.ErrNoSecret)
	})

	t.Run("short secret", func(t *testing.T) {
		t.Parallel()
		_, err := session.NewManager([]string{"short"})
		assert.ErrorIs(t, err, session.ErrSecretTooShort)
	})

	t.Run("config overrides", func(t *testing.T) {
		t.Parallel()
		m, err := session.NewFromConfig(session.Config{
			CookieName:   "sid",
			TTL:          time.Hour,
			CookiePath:   "/app",
			CookieSecure: false,
		}, []string{testSecret})
		require.NoError(t, err)
		assert.Equal(t, time.Hour, m.TTL())
	})
}

func TestManager_LoadCreatesSession(t *testing.T) {
	t.Parallel()

	m, err := session.NewManager([]string{testSecret})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess := m.Load(r)

	require.NotNil(t, sess)
	assert.NotEqual(t, uuid.Nil, sess.ID)
	assert.Nil(t, sess.User)
	assert.False(t, sess.IsAuthenticated())
	assert.True(t, sess.IsModified())
}

func TestManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m, err := session.NewManager([]string{testSecret})
	require.NoError(t, err)

	sess := session.New()
	sess.SetUser(session.User{
		Email:  "a@example.com",
		Domain: "example.com",
		Name:   "A Example",
	})

	w := httptest.NewRecorder()
	require.NoError(t, m.Save(w, sess))
	assert.False(t, sess.IsModified())

	got := m.Load(requestWithCookies(t, w))
	assert.Equal(t, sess.ID, got.ID)
	require.NotNil(t, got.User)
	assert.Equal(t, "a@example.com", got.User.Email)
	assert.Equal(t, "example.com", got.User.Domain)
}

func TestManager_IDStableAcrossRequests(t *testing.T) {
	t.Parallel()

	m, err := session.NewManager([]string{testSecret})
	require.NoError(t, err)

	first := session.New()
	w := httptest.NewRecorder()
	require.NoError(t, m.Save(w, first))

	// Bootstrapping the same durable session twice never changes the id.
	second := m.Load(requestWithCookies(t, w))
	assert.Equal(t, first.ID, second.ID)

	w2 := httptest.NewRecorder()
	require.NoError(t, m.Save(w2, second))
	third := m.Load(requestWithCookies(t, w2))
	assert.Equal(t, first.ID, third.ID)
}

func TestManager_TamperedCookieYieldsFreshSession(t *testing.T) {
	t.Parallel()

	m, err := session.NewManager([]string{testSecret})
	require.NoError(t, err)

	sess := session.New()
	w := httptest.NewRecorder()
	require.NoError(t, m.Save(w, sess))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{
		Name:  cookies[0].Name,
		Value: strings.Replace(cookies[0].Value, ".", "x.", 1),
	})

	got := m.Load(r)
	assert.NotEqual(t, sess.ID, got.ID)
}

func TestManager_KeyRotation(t *testing.T) {
	t.Parallel()

	old, err := session.NewManager([]string{testSecret})
	require.NoError(t, err)

	sess := session.New()
	w := httptest.NewRecorder()
	require.NoError(t, old.Save(w, sess))

	rotated, err := session.NewManager([]string{testSecret2, testSecret})
	require.NoError(t, err)

	got := rotated.Load(requestWithCookies(t, w))
	assert.Equal(t, sess.ID, got.ID)
}

func TestManager_CookieAttributes(t *testing.T) {
	t.Parallel()

	m, err := session.NewManager([]string{testSecret},
		session.WithCookieName("sid"),
		session.WithTTL(48*time.Hour),
		session.WithPath("/overview"),
		session.WithSecure(true),
	)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.Save(w, session.New()))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "sid", c.Name)
	assert.Equal(t, "/overview", c.Path)
	assert.Equal(t, int((48 * time.Hour).Seconds()), c.MaxAge)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestSession_ClearPreservesID(t *testing.T) {
	t.Parallel()

	sess := session.New()
	id := sess.ID
	sess.SetUser(session.User{Email: "a@example.com"})
	sess.SetToken(&session.ProviderToken{AccessToken: "tok"})
	require.True(t, sess.IsAuthenticated())

	sess.Clear()
	assert.Equal(t, id, sess.ID)
	assert.Nil(t, sess.User)
	assert.False(t, sess.IsAuthenticated())
}

func TestSession_StateLifecycle(t *testing.T) {
	t.Parallel()

	sess := session.New()
	assert.Empty(t, sess.ConsumeState())

	sess.SetState("xyz")
	assert.Equal(t, "xyz", sess.ConsumeState())
	assert.Empty(t, sess.ConsumeState())
}

func TestSession_TokenNotSerializedIntoCookie(t *testing.T) {
	t.Parallel()

	m, err := session.NewManager([]string{testSecret})
	require.NoError(t, err)

	sess := session.New()
	sess.SetToken(&session.ProviderToken{AccessToken: "super-secret-access-token"})

	w := httptest.NewRecorder()
	require.NoError(t, m.Save(w, sess))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotContains(t, cookies[0].Value, "super-secret-access-token")

	got := m.Load(requestWithCookies(t, w))
	assert.Nil(t, got.Token)
}
