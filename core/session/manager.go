package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// minSecretLength is the minimum signing secret length.
const minSecretLength = 32

// Manager reads and writes the signed session cookie. The first secret
// signs; all secrets are tried during verification so signing keys can be
// rotated without dropping live sessions. Safe for concurrent use.
type Manager struct {
	secrets []string
	name    string
	ttl     time.Duration
	path    string
	secure  bool
}

// NewManager creates a session cookie manager with the given signing secrets.
func NewManager(secrets []string, opts ...Option) (*Manager, error) {
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i := range secrets {
		if len(secrets[i]) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(secrets[i]), minSecretLength)
		}
	}

	m := &Manager{
		secrets: secrets,
		name:    "ag_session",
		ttl:     90 * 24 * time.Hour,
		path:    "/",
		secure:  true,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// NewFromConfig creates a Manager from configuration. Additional options
// override config values.
func NewFromConfig(cfg Config, secrets []string, opts ...Option) (*Manager, error) {
	configOpts := []Option{
		WithCookieName(cfg.CookieName),
		WithTTL(cfg.TTL),
		WithPath(cfg.CookiePath),
		WithSecure(cfg.CookieSecure),
	}
	return NewManager(secrets, append(configOpts, opts...)...)
}

// TTL returns the maximum cookie lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Load returns the session carried by the request cookie. A missing,
// malformed, or tampered cookie yields a fresh anonymous session; Load
// never fails the request.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.name)
	if err != nil {
		return New()
	}

	payload, err := m.verify(cookie.Value)
	if err != nil {
		return New()
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return New()
	}
	if sess.ID == uuid.Nil {
		return New()
	}

	return &sess
}

// Save writes the session back as a signed cookie and re-marks it durable
// for the full TTL. MarkSaved is called on success.
func (m *Manager) Save(w http.ResponseWriter, sess *Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    m.sign(payload),
		Path:     m.path,
		MaxAge:   int(m.ttl.Seconds()),
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	sess.MarkSaved()
	return nil
}

// sign produces base64(payload) + "." + base64(hmac-sha256(payload)).
func (m *Manager) sign(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(m.secrets[0]))
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(payload) + "." +
		base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// verify checks the signature against every configured secret, supporting
// key rotation.
func (m *Manager) verify(value string) ([]byte, error) {
	encoded, sig, ok := strings.Cut(value, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	signature, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(payload)
		if subtle.ConstantTimeCompare(signature, mac.Sum(nil)) == 1 {
			return payload, nil
		}
	}

	return nil, ErrInvalidSignature
}
