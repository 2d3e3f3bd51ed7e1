package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultRedisPrefix namespaces every key written by RedisKV.
const DefaultRedisPrefix = "mela:"

// RedisKV stores blobs as plain Redis strings under a key prefix.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV connects to redisURL and verifies the connection with PING.
func NewRedisKV(ctx context.Context, redisURL, prefix string) (*RedisKV, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL is required: %w", ErrKVUnavailable)
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", ErrKVUnavailable)
	}
	return NewRedisKVFromClient(client, prefix), nil
}

// NewRedisKVFromClient wraps an existing client.
func NewRedisKVFromClient(client *redis.Client, prefix string) *RedisKV {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

// SetMany writes all entries inside MULTI/EXEC.
func (r *RedisKV) SetMany(ctx context.Context, entries map[string]string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, r.prefix+k, v, 0)
		}
		return nil
	})
	return err
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// Close closes the underlying client.
func (r *RedisKV) Close() error {
	return r.client.Close()
}
