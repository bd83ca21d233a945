package cipher

import "errors"

var (
	// ErrNoSecret indicates no encryption secret was provided.
	ErrNoSecret = errors.New("no encryption secret provided")

	// ErrSecretTooShort indicates a secret doesn't meet the minimum length
	// required for AES-256.
	ErrSecretTooShort = errors.New("encryption secret must be at least 32 characters long")

	// ErrInvalidFormat indicates the ciphertext token has an unexpected
	// encoding and cannot be decoded.
	ErrInvalidFormat = errors.New("invalid ciphertext format")

	// ErrDecryptionFailed indicates the ciphertext couldn't be decrypted with
	// any configured secret, due to corruption, tampering, or key rotation.
	ErrDecryptionFailed = errors.New("failed to decrypt ciphertext")
)
