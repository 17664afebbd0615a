package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps one browser session's identity entries in a hash.
// It satisfies session.Store.
type SessionStore struct {
	rdb redis.Cmdable
	key string
	ttl time.Duration
}

func NewSessionStore(rdb redis.Cmdable, sid string, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = TTLSession
	}
	return &SessionStore{rdb: rdb, key: fmt.Sprintf(KeySession, sid), ttl: ttl}
}

func (s *SessionStore) Load(ctx context.Context) (map[string]string, error) {
	m, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SessionStore) Save(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	args := make([]any, 0, 2*len(entries))
	for k, v := range entries {
		args = append(args, k, v)
	}
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, s.key, args...)
		p.Expire(ctx, s.key, s.ttl)
		return nil
	})
	return err
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}
