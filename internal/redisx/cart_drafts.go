package redisx

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartDrafts holds one browser session's unsent cart quantity edits.
// It satisfies workflow.Drafts.
type CartDrafts struct {
	rdb redis.Cmdable
	key string
	ttl time.Duration
}

func NewCartDrafts(rdb redis.Cmdable, sid string, ttl time.Duration) *CartDrafts {
	if ttl <= 0 {
		ttl = TTLCartDraft
	}
	return &CartDrafts{rdb: rdb, key: fmt.Sprintf(KeyCartDraft, sid), ttl: ttl}
}

func (d *CartDrafts) Quantities(ctx context.Context) (map[int64]int, error) {
	m, err := d.rdb.HGetAll(ctx, d.key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[int64]int, len(m))
	for k, v := range m {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		q, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		out[id] = q
	}
	return out, nil
}

func (d *CartDrafts) SetQuantity(ctx context.Context, itemID int64, qty int) error {
	_, err := d.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, d.key, strconv.FormatInt(itemID, 10), qty)
		p.Expire(ctx, d.key, d.ttl)
		return nil
	})
	return err
}

func (d *CartDrafts) Drop(ctx context.Context, itemID int64) error {
	return d.rdb.HDel(ctx, d.key, strconv.FormatInt(itemID, 10)).Err()
}

func (d *CartDrafts) Reset(ctx context.Context) error {
	return d.rdb.Del(ctx, d.key).Err()
}
