package session

import (
	"encoding/json"
	"strings"
	"time"
)

// expiryMargin accounts for clock skew and network latency when checking
// token expiry.
const expiryMargin = 30 * time.Second

// ScopeList holds OAuth scopes as an explicit list. The provider reports the
// granted scope either as a space-delimited string or as a list depending on
// the endpoint; both shapes normalize to ScopeList at the JSON boundary so
// nothing downstream branches on type.
type ScopeList []string

// UnmarshalJSON accepts a space-delimited string or a list of strings.
// Any other shape is a hard error.
func (s *ScopeList) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*s = strings.Fields(asString)
		return nil
	}

	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*s = asList
		return nil
	}

	return ErrInvalidScopeFormat
}

// ProviderToken is the raw token bundle issued by the identity provider.
type ProviderToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Scopes       ScopeList `json:"scope,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// Expired reports whether the access token has expired or will expire within
// the safety margin. Tokens without a recorded expiry are treated as valid.
func (t *ProviderToken) Expired() bool {
	if t == nil || t.Expiry.IsZero() {
		return false
	}
	return time.Now().After(t.Expiry.Add(-expiryMargin))
}
