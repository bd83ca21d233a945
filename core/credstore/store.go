package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nickearl/authgate/core/cipher"
	"github.com/nickearl/authgate/core/session"
)

// Record is the durable credential entity cached per session.
type Record struct {
	UserInfo      session.Profile        `json:"user_info"`
	ProviderToken *session.ProviderToken `json:"provider_token"`
}

// Cache is the narrow slice of the Redis API the store uses, satisfied by
// *redis.Client. All operations are single-key, relying on Redis per-key
// atomicity; near-simultaneous saves for the same session converge to last
// write wins.
type Cache interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store maps session identifiers to encrypted credential records. Stateless
// between calls; safe for concurrent use.
type Store struct {
	cache     Cache
	cipher    *cipher.Cipher
	namespace string
	ttl       time.Duration
	logger    *slog.Logger
}

// Option is a functional option for configuring the store.
type Option func(*Store)

// WithTTL overrides the record time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for debug-level integrity failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a credential store writing under the given cache namespace.
// The default TTL is 30 days.
func New(cache Cache, ciph *cipher.Cipher, namespace string, opts ...Option) *Store {
	s := &Store{
		cache:     cache,
		cipher:    ciph,
		namespace: namespace,
		ttl:       30 * 24 * time.Hour,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewFromConfig creates a Store from configuration.
func NewFromConfig(cfg Config, cache Cache, ciph *cipher.Cipher, opts ...Option) *Store {
	configOpts := []Option{WithTTL(cfg.TTL)}
	return New(cache, ciph, cfg.Namespace, append(configOpts, opts...)...)
}

// Save serializes, encrypts, and upserts the record under the derived key,
// refreshing the TTL.
func (s *Store) Save(ctx context.Context, sessionID string, rec Record) error {
	plaintext, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrSaveRecord, err)
	}

	ciphertext, err := s.cipher.Encrypt(plaintext)
	if err != nil {
		return errors.Join(ErrSaveRecord, err)
	}

	if err := s.cache.Set(ctx, s.key(sessionID), ciphertext, s.ttl).Err(); err != nil {
		return errors.Join(ErrSaveRecord, err)
	}

	return nil
}

// Load reads the record for the session. A missing key, a ciphertext that no
// configured secret can open, or an unparsable plaintext all return (nil, nil)
// so callers treat every integrity failure as a plain cache miss. Only
// transport errors against the cache itself are reported.
func (s *Store) Load(ctx context.Context, sessionID string) (*Record, error) {
	ciphertext, err := s.cache.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrLoadRecord, err)
	}

	plaintext, err := s.cipher.Decrypt(ciphertext)
	if err != nil {
		s.logger.DebugContext(ctx, "credential record failed decryption, treating as miss",
			slog.String("session_id", sessionID), slog.Any("error", err))
		return nil, nil
	}

	var rec Record
	if err := json.Unmarshal(plaintext, &rec); err != nil {
		s.logger.DebugContext(ctx, "credential record failed parsing, treating as miss",
			slog.String("session_id", sessionID), slog.Any("error", err))
		return nil, nil
	}

	return &rec, nil
}

// Delete removes the record. Deleting a non-existent key is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Del(ctx, s.key(sessionID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return errors.Join(ErrDeleteRecord, err)
	}
	return nil
}

// key derives the cache key "{namespace}:session:{session_id}".
func (s *Store) key(sessionID string) string {
	return s.namespace + ":session:" + sessionID
}
