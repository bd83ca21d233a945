// Package google implements the OAuth2 federation client against Google's
// identity endpoints: authorization, token exchange, userinfo, refresh, and
// revocation.
//
// The authorization URL always requests access_type=offline and
// prompt=consent so the provider issues a refresh token. All outbound calls
// are bounded by the caller's context; transport failures and non-2xx
// responses surface as errors for the gate to degrade into a boolean result.
//
// The client identity (id/secret and registered redirect URIs) comes from
// the secret resolver at startup; see integration/secretmanager.
package google
