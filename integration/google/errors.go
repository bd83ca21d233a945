package google

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingClientID indicates the parsed client secret blob carries no
	// client id.
	ErrMissingClientID = errors.New("oauth client json missing client_id")

	// ErrUserinfoFailed indicates the userinfo endpoint was unreachable or
	// returned a non-2xx response.
	ErrUserinfoFailed = errors.New("failed to fetch userinfo from provider")

	// ErrNoRefreshToken indicates a refresh was requested for a token bundle
	// without a refresh token.
	ErrNoRefreshToken = errors.New("no refresh token available")
)

// RevocationError carries the provider's response to a failed revoke call.
// Detail holds the parsed provider error when the body was parseable.
type RevocationError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *RevocationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("provider revoke failed (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("provider revoke failed (%d)", e.StatusCode)
}
