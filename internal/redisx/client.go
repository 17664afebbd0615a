package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func Exists(ctx context.Context, rdb redis.Cmdable, key string) (bool, error) {
	n, err := rdb.Exists(ctx, key).Result()
	return n > 0, err
}

// Deduper remembers processed ids for TTLDedup.
type Deduper struct {
	Redis   redis.Cmdable
	Service string
}

func (d *Deduper) key(id string) string { return fmt.Sprintf(KeyDedup, d.Service, id) }

// Seen reports whether id was already marked as processed.
func (d *Deduper) Seen(ctx context.Context, id string) (bool, error) {
	return Exists(ctx, d.Redis, d.key(id))
}

// Mark records id as processed.
func (d *Deduper) Mark(ctx context.Context, id string) error {
	return d.Redis.Set(ctx, d.key(id), "1", TTLDedup).Err()
}
