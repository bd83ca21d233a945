// Package cipher provides authenticated symmetric encryption for credential
// payloads using AES-256-GCM.
//
// A single process-wide Cipher is constructed at startup from one or more
// secrets. The first secret encrypts; all secrets are tried during decryption
// so keys can be rotated without invalidating every stored credential at once.
//
// Decryption failure is a recoverable condition: corrupted, forged, or
// stale ciphertext yields ErrDecryptionFailed, never a panic. Callers treat
// it as "no valid credential".
//
// Usage:
//
//	c, err := cipher.New([]string{os.Getenv("ENCRYPTION_KEYS")})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	token, err := c.Encrypt([]byte(`{"user":"a@example.com"}`))
//	plaintext, err := c.Decrypt(token)
package cipher
