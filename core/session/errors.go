package session

import "errors"

var (
	// ErrNoSecret is returned when no signing secret is provided.
	ErrNoSecret = errors.New("no signing secret provided for session manager")

	// ErrSecretTooShort indicates a signing secret below the minimum length.
	ErrSecretTooShort = errors.New("signing secret must be at least 32 characters long")

	// ErrInvalidSignature indicates cookie signature verification failed,
	// suggesting tampering or a rotated-out key.
	ErrInvalidSignature = errors.New("session cookie signature verification failed")

	// ErrInvalidFormat indicates the cookie value has an unexpected shape.
	ErrInvalidFormat = errors.New("invalid session cookie format")

	// ErrInvalidScopeFormat is returned when the provider's scope field is
	// neither a space-delimited string nor a list of strings.
	ErrInvalidScopeFormat = errors.New("invalid scope format, expected string or list")
)
