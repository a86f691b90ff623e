package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.trai.ch/zerr"
	"go.uber.org/zap"
)

// RedisConfig holds the configuration for the Redis client.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	Retention time.Duration
}

// RedisStore keeps entries in Redis as JSON. Keys expire after the configured
// retention, which should be longer than any lifetime callers ask for so that
// stale entries can still be revalidated.
type RedisStore struct {
	redisClient *redis.Client
	retention   time.Duration
	sugar       *zap.SugaredLogger
}

// NewRedisStore connects to Redis and pings it before returning.
func NewRedisStore(ctx context.Context, cfg *RedisConfig, sugar *zap.SugaredLogger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to connect to redis"), "redis_address", cfg.Addr)
	}

	sugar.Infof("Connected to Redis at %s", cfg.Addr)
	return &RedisStore{
		redisClient: rdb,
		retention:   cfg.Retention,
		sugar:       sugar,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := s.redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return &entry, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := s.redisClient.Set(ctx, key, data, s.retention).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	s.sugar.Debugf("Stored %s in Redis", key)
	return nil
}

func (s *RedisStore) Close() error {
	if s.redisClient != nil {
		s.sugar.Info("Closing Redis client connection")
		return s.redisClient.Close()
	}
	return nil
}
