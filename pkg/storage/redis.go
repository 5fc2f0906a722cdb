package storage

import (
	"context"
	stderrors "errors"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/kintree/pkg/errors"
)

// RedisConfig configures [RedisBackend].
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// Prefix is prepended to every key, e.g. "kintree:".
	Prefix string `toml:"prefix"`
}

// RedisBackend stores each blob as a Redis string.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend connects to Redis and verifies the connection with PING.
func NewRedisBackend(ctx context.Context, cfg RedisConfig) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStorageBackend, err, "connect to redis at %s", cfg.Addr)
	}
	return &RedisBackend{client: client, prefix: cfg.Prefix}, nil
}

func (b *RedisBackend) Name() string { return BackendRedis }

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStorage, err, "redis get %s", key)
	}
	return data, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, b.prefix+key, data, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "redis set %s", key)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, b.prefix+key).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "redis del %s", key)
	}
	return nil
}

func (b *RedisBackend) Close() error { return b.client.Close() }

var _ Backend = (*RedisBackend)(nil)
