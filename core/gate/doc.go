// Package gate implements the authorization gate and revocation flow for
// federated login.
//
// The gate validates the current provider session, enforces the configured
// email-domain allow-list, and materializes both the local session's user
// record and the durable encrypted credential record. Its decision is an
// explicit result type so callers can distinguish "redirect to login" from
// "hard reject": a visitor without a provider session gets NotLoggedIn, a
// visitor from a non-allow-listed domain gets ForbiddenDomain.
//
// Revocation is a separate explicit path: it refreshes an expired token when
// a refresh token is available, calls the provider's revoke endpoint, and on
// success clears both the cached credential record and the local session.
// Provider-reported failures keep all state so the user can retry.
//
// Usage:
//
//	g := gate.New(provider, store,
//		gate.WithAuthorizedDomains([]string{"example.com"}),
//	)
//
//	switch g.CheckAuthorization(ctx, sess) {
//	case gate.Authorized:
//		// proceed
//	case gate.NotLoggedIn:
//		// redirect into the provider login flow
//	case gate.ForbiddenDomain:
//		// reject with 403
//	case gate.ProviderError:
//		// redirect into the provider login flow
//	}
package gate
