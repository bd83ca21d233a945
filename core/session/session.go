package session

import (
	"github.com/google/uuid"
)

// User is the lightweight cached copy of the provider profile kept on the
// local session. Absence means the visitor is not yet authorized.
type User struct {
	Email     string `json:"email"`
	Domain    string `json:"domain"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// OAuthState is the anti-forgery state parameter for an in-flight provider
// login, written before the redirect and consumed on callback.
type OAuthState struct {
	Value string `json:"value"`
}

// Session is the request-scoped identity correlation handle. ID is immutable
// for the life of the cookie. Token is an ephemeral in-process cache of the
// durable credential record and is never serialized into the cookie.
type Session struct {
	ID    uuid.UUID   `json:"sid"`
	User  *User       `json:"user,omitempty"`
	State *OAuthState `json:"state,omitempty"`

	Token *ProviderToken `json:"-"`

	// modified tracks whether the cookie needs rewriting.
	modified bool
}

// New creates a fresh anonymous session with a generated identifier,
// marked for saving.
func New() *Session {
	return &Session{
		ID:       uuid.New(),
		modified: true,
	}
}

// EnsureID generates an identifier if the session somehow lacks one and
// returns it. An existing identifier is never regenerated.
func (s *Session) EnsureID() uuid.UUID {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
		s.modified = true
	}
	return s.ID
}

// IsAuthenticated reports whether the session holds a provider token bundle
// for the current request.
func (s *Session) IsAuthenticated() bool {
	return s.Token != nil && s.Token.AccessToken != ""
}

// SetUser populates the lightweight user record.
func (s *Session) SetUser(u User) {
	s.User = &u
	s.modified = true
}

// SetToken caches the provider token bundle in-process for this request.
// The durable copy lives in the credential store; the cookie is unchanged.
func (s *Session) SetToken(t *ProviderToken) {
	s.Token = t
}

// SetState records the anti-forgery state for an in-flight login.
func (s *Session) SetState(value string) {
	s.State = &OAuthState{Value: value}
	s.modified = true
}

// ConsumeState returns and clears the stored login state.
func (s *Session) ConsumeState() string {
	if s.State == nil {
		return ""
	}
	value := s.State.Value
	s.State = nil
	s.modified = true
	return value
}

// Clear wipes the authorization-relevant fields while preserving the session
// identifier, which stays stable for the cookie lifetime.
func (s *Session) Clear() {
	s.User = nil
	s.Token = nil
	s.State = nil
	s.modified = true
}

// IsModified reports whether the cookie payload changed and needs rewriting.
func (s *Session) IsModified() bool {
	return s.modified
}

// MarkSaved resets the modification flag after the cookie has been written.
func (s *Session) MarkSaved() {
	s.modified = false
}
