package google

import "encoding/json"

// Config holds provider configuration with environment variable support.
type Config struct {
	// SecretName and SecretVersion locate the OAuth client JSON in the
	// managed secret store.
	SecretName    string `env:"GOOGLE_OAUTH_SECRET_NAME" envDefault:"overview-app-oauth-json"`
	SecretVersion string `env:"GOOGLE_OAUTH_SECRET_VERSION" envDefault:"latest"`

	// RedirectURL overrides redirect URI selection entirely when set.
	RedirectURL string `env:"GOOGLE_REDIRECT_URL" envDefault:""`
}

// ClientCredentials is the OAuth client identity registered with the
// provider.
type ClientCredentials struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	RedirectURIs []string `json:"redirect_uris,omitempty"`
}

// ParseClientCredentials extracts the client identity from an OAuth client
// JSON blob. The identity may be nested under a "web" or "installed" key, or
// sit flat at the top level.
func ParseClientCredentials(blob []byte) (ClientCredentials, error) {
	var wrapped struct {
		Web       *ClientCredentials `json:"web"`
		Installed *ClientCredentials `json:"installed"`
	}
	if err := json.Unmarshal(blob, &wrapped); err != nil {
		return ClientCredentials{}, err
	}

	var creds ClientCredentials
	switch {
	case wrapped.Web != nil:
		creds = *wrapped.Web
	case wrapped.Installed != nil:
		creds = *wrapped.Installed
	default:
		if err := json.Unmarshal(blob, &creds); err != nil {
			return ClientCredentials{}, err
		}
	}

	if creds.ClientID == "" {
		return ClientCredentials{}, ErrMissingClientID
	}
	return creds, nil
}

// Placeholder returns non-functional credentials used when federated login
// is disabled and no provider call is ever made.
func Placeholder() ClientCredentials {
	return ClientCredentials{ClientID: "disabled", ClientSecret: "disabled"}
}
