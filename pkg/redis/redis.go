package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Nil is returned by Get when the key does not exist.
var Nil = redis.Nil

type Options struct {
	Host     string
	Port     string
	Password string
}

type RedisClient struct {
	client *redis.Client
}

func Connect(ctx context.Context, opts Options) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})

	_, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// Wrap adopts an existing go-redis client.
func Wrap(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// CheckRateLimit counts one hit against key and reports whether it is still
// within limit for the current window, plus the seconds left when it is not.
func (r *RedisClient) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	current, err := r.client.Get(ctx, key).Int()
	if err != nil && err != redis.Nil {
		return true, 0, err
	}

	if current >= limit {
		ttl, _ := r.client.TTL(ctx, key).Result()
		return false, int(ttl.Seconds()), nil
	}

	pipe := r.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	_, err = pipe.Exec(ctx)

	return true, 0, err
}

func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RedisClient) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// AddToSet adds member to the set at key and refreshes the key's expiry.
func (r *RedisClient) AddToSet(ctx context.Context, key string, member interface{}, expiration time.Duration) error {
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, key, member)
	pipe.Expire(ctx, key, expiration)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisClient) RemoveFromSet(ctx context.Context, key string, member interface{}) error {
	return r.client.SRem(ctx, key, member).Err()
}

func (r *RedisClient) SetMembers(ctx context.Context, key string) ([]string, error) {
	return r.client.SMembers(ctx, key).Result()
}
