package credstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of a Redis server, for deployments
// where the process has no persistent disk. The Store interface is
// synchronous, so every call runs against a background context with a fixed
// timeout rather than a caller-supplied one.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// RedisConfig holds the connection settings for a Redis-backed store.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL"`
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"credstore:"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
	CommandTimeout time.Duration `env:"REDIS_COMMAND_TIMEOUT" envDefault:"3s"`
}

// NewRedisStore connects to the Redis server described by cfg and verifies
// the connection with a ping before returning.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrOpenFailed, err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrOpenFailed, err)
	}

	return &RedisStore{
		client:  client,
		prefix:  cfg.KeyPrefix,
		timeout: cfg.CommandTimeout,
	}, nil
}

// Get returns the value for key, and whether it was present. Transport
// failures read as "absent": the session manager treats a missing token as
// an unauthenticated session, which is the safe interpretation.
func (s *RedisStore) Get(key string) (string, bool) {
	ctx, cancel := s.opCtx()
	defer cancel()

	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

// Set stores value under key with no expiry; token lifetime is the server's
// concern, not the store's.
func (s *RedisStore) Set(key, value string) error {
	ctx, cancel := s.opCtx()
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	return nil
}

// Remove deletes key.
func (s *RedisStore) Remove(key string) error {
	ctx, cancel := s.opCtx()
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	return nil
}

// Close releases the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}
