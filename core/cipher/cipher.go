package cipher

import (
	"crypto/aes"
	gocipher "crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"slices"
)

// minSecretLength is the minimum secret length for AES-256.
const minSecretLength = 32

// Cipher performs authenticated encryption of credential payloads with a
// process-wide key set. Safe for concurrent use.
type Cipher struct {
	secrets []string
}

// New creates a Cipher from the given secrets. The first secret is used for
// encryption; all secrets are tried on decryption to support key rotation.
// Empty secrets are discarded, and every remaining secret must be at least
// 32 characters long.
func New(secrets []string) (*Cipher, error) {
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i := range secrets {
		if len(secrets[i]) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(secrets[i]), minSecretLength)
		}
	}

	return &Cipher{secrets: secrets}, nil
}

// Encrypt seals the plaintext with AES-256-GCM under the primary secret and
// returns a base64url-encoded token carrying nonce and auth tag.
func (c *Cipher) Encrypt(plaintext []byte) (string, error) {
	gcm, err := newGCM(c.secrets[0])
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a token produced by Encrypt, trying each configured secret in
// order. Returns ErrDecryptionFailed when no secret authenticates the
// ciphertext; the caller must treat this as a missing credential, not a fault.
func (c *Cipher) Decrypt(token string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	for _, secret := range c.secrets {
		gcm, err := newGCM(secret)
		if err != nil {
			continue
		}

		if len(raw) < gcm.NonceSize() {
			continue
		}

		nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
		if plaintext, err := gcm.Open(nil, nonce, sealed, nil); err == nil {
			return plaintext, nil
		}
	}

	return nil, ErrDecryptionFailed
}

func newGCM(secret string) (gocipher.AEAD, error) {
	block, err := aes.NewCipher([]byte(secret[:minSecretLength]))
	if err != nil {
		return nil, err
	}
	return gocipher.NewGCM(block)
}
