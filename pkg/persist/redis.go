package persist

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key written by RedisBackend.
const DefaultRedisPrefix = "resume-builder:"

// RedisBackend stores values as plain redis strings under a key prefix.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend connects to redisURL and verifies the connection.
func NewRedisBackend(ctx context.Context, redisURL, prefix string) (b *RedisBackend, err error) {
	var opts *redis.Options
	opts, err = redis.ParseURL(redisURL)
	if err != nil {
		err = errors.Wrap(err, "failed to parse redis url")
		return b, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = client.Ping(pingCtx).Err()
	if err != nil {
		_ = client.Close()
		err = errors.Wrap(err, "failed to connect to redis")
		return b, err
	}

	b = NewRedisBackendWithClient(client, prefix)
	return b, err
}

// NewRedisBackendWithClient wraps an existing client.
func NewRedisBackendWithClient(client *redis.Client, prefix string) (b *RedisBackend) {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	b = &RedisBackend{
		client: client,
		prefix: prefix,
	}
	return b
}

func (b *RedisBackend) key(key string) (full string) {
	full = b.prefix + key
	return full
}

// Get implements Backend.
func (b *RedisBackend) Get(ctx context.Context, key string) (value []byte, err error) {
	value, err = b.client.Get(ctx, b.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		value = nil
		err = ErrNotFound
		return value, err
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s", key)
		return value, err
	}
	return value, err
}

// Set implements Backend.
func (b *RedisBackend) Set(ctx context.Context, key string, value []byte) (err error) {
	err = b.client.Set(ctx, b.key(key), value, 0).Err()
	if err != nil {
		err = errors.Wrapf(err, "failed to write %s", key)
		return err
	}
	return err
}

// Delete implements Backend.
func (b *RedisBackend) Delete(ctx context.Context, key string) (err error) {
	err = b.client.Del(ctx, b.key(key)).Err()
	if err != nil {
		err = errors.Wrapf(err, "failed to delete %s", key)
		return err
	}
	return err
}

// Close implements Backend.
func (b *RedisBackend) Close() (err error) {
	err = b.client.Close()
	return err
}
