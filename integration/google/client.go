package google

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/nickearl/authgate/core/session"
)

// Scopes requested from the provider: email and profile for the userinfo
// document, openid for standard OIDC semantics.
var Scopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"openid",
}

const (
	defaultUserinfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"
	defaultRevokeURL   = "https://oauth2.googleapis.com/revoke"

	// requestTimeout bounds provider calls when the request context carries
	// no earlier deadline; nothing in the login path may hang.
	requestTimeout = 15 * time.Second
)

// Client talks to the identity provider. Safe for concurrent use.
type Client struct {
	oauth       *oauth2.Config
	httpClient  *http.Client
	userinfoURL string
	revokeURL   string
}

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for userinfo and revoke
// calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithEndpoint overrides the provider's authorization and token endpoints.
func WithEndpoint(authURL, tokenURL string) Option {
	return func(c *Client) {
		c.oauth.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
	}
}

// WithUserinfoURL overrides the userinfo endpoint.
func WithUserinfoURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.userinfoURL = u
		}
	}
}

// WithRevokeURL overrides the revoke endpoint.
func WithRevokeURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.revokeURL = u
		}
	}
}

// New creates a provider client for the given OAuth client identity and
// redirect URL.
func New(creds ClientCredentials, redirectURL string, opts ...Option) *Client {
	c := &Client{
		oauth: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  redirectURL,
			Scopes:       Scopes,
			Endpoint:     googleoauth.Endpoint,
		},
		httpClient:  &http.Client{Timeout: requestTimeout},
		userinfoURL: defaultUserinfoURL,
		revokeURL:   defaultRevokeURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AuthCodeURL builds the provider login URL for the given anti-forgery
// state. Offline access with forced consent guarantees refresh-token
// issuance.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades the authorization code for a token bundle.
func (c *Client) Exchange(ctx context.Context, code string) (*session.ProviderToken, error) {
	ctx = c.boundContext(ctx)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	return fromOAuth2(tok), nil
}

// Userinfo fetches the user's profile with the access token. Any transport
// failure or non-2xx response is an error.
func (c *Client) Userinfo(ctx context.Context, tok *session.ProviderToken) (session.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return session.Profile{}, errors.Join(ErrUserinfoFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return session.Profile{}, errors.Join(ErrUserinfoFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return session.Profile{}, errors.Join(ErrUserinfoFailed,
			errors.New("userinfo returned status "+resp.Status))
	}

	var profile session.Profile
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&profile); err != nil {
		return session.Profile{}, errors.Join(ErrUserinfoFailed, err)
	}

	return profile, nil
}

// Refresh exchanges the refresh token for a fresh access token at the
// provider's token endpoint. The refresh token and granted scopes are
// preserved when the provider omits them from the response.
func (c *Client) Refresh(ctx context.Context, tok *session.ProviderToken) (*session.ProviderToken, error) {
	if tok.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	ctx = c.boundContext(ctx)

	// Zero expiry forces the token source to hit the token endpoint.
	stale := &oauth2.Token{
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	fresh, err := c.oauth.TokenSource(ctx, stale).Token()
	if err != nil {
		return nil, err
	}

	refreshed := fromOAuth2(fresh)
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = tok.RefreshToken
	}
	if len(refreshed.Scopes) == 0 {
		refreshed.Scopes = tok.Scopes
	}

	return refreshed, nil
}

// Revoke invalidates the access token at the provider. A non-200 response
// yields a *RevocationError carrying the provider's error detail when the
// body was parseable JSON.
func (c *Client) Revoke(ctx context.Context, accessToken string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	form := url.Values{"token": {accessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.revokeURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	revErr := &RevocationError{StatusCode: resp.StatusCode}
	var detail struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&detail); err == nil {
		revErr.Detail = detail.Error
	}
	return revErr
}

// boundContext routes oauth2's internal HTTP calls through the configured
// client so tests and timeouts apply to token-endpoint traffic too.
func (c *Client) boundContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// fromOAuth2 converts the library token into the session bundle, pulling the
// granted scope out of the token response extras.
func fromOAuth2(tok *oauth2.Token) *session.ProviderToken {
	pt := &session.ProviderToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}

	switch scope := tok.Extra("scope").(type) {
	case string:
		pt.Scopes = session.ScopeList(strings.Fields(scope))
	case []any:
		for _, s := range scope {
			if str, ok := s.(string); ok {
				pt.Scopes = append(pt.Scopes, str)
			}
		}
	}

	return pt
}
