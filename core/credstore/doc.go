// Package credstore persists encrypted credential records in the shared
// Redis cache, keyed by session identifier.
//
// Each record pairs the provider's userinfo profile with the issued token
// bundle. Only ciphertext ever touches the cache: records are serialized to
// JSON and sealed with the process-wide cipher before writing. Saves are
// upserts that refresh the fixed TTL, so the record silently vanishes when
// the TTL lapses without an explicit delete.
//
// Load treats a decryption or parse failure exactly like a cache miss and
// returns no record; a rotated key or a tampered value must never fail a
// request. Delete is idempotent.
package credstore
