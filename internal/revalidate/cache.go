// Package revalidate caches rendered page payloads in Redis and
// invalidates them when the underlying content changes, so a page is
// regenerated on its next access.
package revalidate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func New(redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing Redis client.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client, prefix: "page:", ttl: time.Hour}
}

func (c *Cache) key(path string) string {
	return c.prefix + path
}

// Get returns the cached payload for a page path, if present. A nil
// cache never hits.
func (c *Cache) Get(ctx context.Context, path string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, c.key(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("revalidate: get %s: %v", path, err)
		return nil, false
	}
	return payload, true
}

// Store caches a rendered page payload. Best effort: failures are
// logged and the page is simply regenerated on the next access.
func (c *Cache) Store(ctx context.Context, path string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, c.key(path), payload, c.ttl).Err(); err != nil {
		log.Printf("revalidate: store %s: %v", path, err)
	}
}

// Invalidate drops the cached payloads for the given page paths.
// Best effort: a failed invalidation never fails the mutation that
// triggered it.
func (c *Cache) Invalidate(ctx context.Context, paths ...string) {
	if c == nil || len(paths) == 0 {
		return
	}
	keys := make([]string, len(paths))
	for i, path := range paths {
		keys[i] = c.key(path)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("revalidate: invalidate %v: %v", paths, err)
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
