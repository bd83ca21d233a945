// Package session implements the per-browser session identity used to
// correlate federated logins with cached credentials.
//
// A Session carries an opaque unique identifier persisted in a signed,
// durable cookie. The identifier is created once on first contact and never
// regenerated for the life of the cookie; it is present whether or not the
// visitor ever logs in, so a later login can always be correlated.
//
// The optional User record is a lightweight cached copy of the identity
// provider's profile and travels inside the signed cookie. The provider token
// bundle is never written to the cookie: it lives in the shared credential
// store and is held on the Session only as an in-process cache for the
// current request.
//
// The Manager signs cookie payloads with HMAC-SHA256. A cookie that is
// absent, malformed, or fails signature verification yields a fresh
// anonymous session rather than an error.
package session
