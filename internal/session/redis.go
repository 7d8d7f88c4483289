package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

const (
	keyPrefix  = "wt:session:"
	defaultTTL = 2 * time.Hour
)

// RedisStore implements Store on Redis. Each session owns two keys: the
// JSON-encoded valuation and a verification flag. Both share the session TTL,
// which is refreshed on every save.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

// Option configures a RedisStore.
type Option func(*RedisStore)

// WithTTL sets how long an untouched session survives.
func WithTTL(ttl time.Duration) Option {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the clock used for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *RedisStore) {
		s.now = now
	}
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client, opts ...Option) *RedisStore {
	s := &RedisStore{rdb: rdb, ttl: defaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dial connects to Redis and verifies the connection.
func Dial(ctx context.Context, addr, password string, db int, opts ...Option) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return NewRedisStore(rdb, opts...), nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Ping verifies the Redis connection is alive.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func valuationKey(id string) string { return keyPrefix + id + ":valuation" }
func verifiedKey(id string) string  { return keyPrefix + id + ":verified" }

// Load returns the stored valuation for id.
func (s *RedisStore) Load(ctx context.Context, id string) (*domain.ValuationRecord, error) {
	data, err := s.rdb.Get(ctx, valuationKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMissing
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}

	var rec domain.ValuationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if rec.Version != domain.RecordVersion {
		return nil, fmt.Errorf("%w: version %d", ErrCorrupt, rec.Version)
	}
	if rec.SessionID != id {
		return nil, fmt.Errorf("%w: session id mismatch", ErrCorrupt)
	}

	return &rec, nil
}

// Save writes rec and refreshes the TTL of both session keys.
func (s *RedisStore) Save(ctx context.Context, rec *domain.ValuationRecord) error {
	if rec.SessionID == "" {
		return errors.New("saving session: empty session id")
	}

	rec.Version = domain.RecordVersion
	rec.UpdatedAt = s.now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", rec.SessionID, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, valuationKey(rec.SessionID), data, s.ttl)
	pipe.Expire(ctx, verifiedKey(rec.SessionID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving session %s: %w", rec.SessionID, err)
	}

	return nil
}

// Delete removes every key belonging to the session.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, valuationKey(id), verifiedKey(id)).Err(); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

// SetVerified marks the session as having passed verification.
func (s *RedisStore) SetVerified(ctx context.Context, id string) error {
	n, err := s.rdb.Exists(ctx, valuationKey(id)).Result()
	if err != nil {
		return fmt.Errorf("checking session %s: %w", id, err)
	}
	if n == 0 {
		return ErrMissing
	}

	if err := s.rdb.Set(ctx, verifiedKey(id), "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("verifying session %s: %w", id, err)
	}
	return nil
}

// Verified reports whether the session's verification flag is set.
func (s *RedisStore) Verified(ctx context.Context, id string) (bool, error) {
	v, err := s.rdb.Get(ctx, verifiedKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading verification for %s: %w", id, err)
	}
	return v == "1", nil
}
