package seenstore

import (
	"context"

	"github.com/redis/go-redis/v9"

	apperrors "camperwatch/pkg/errors"
)

// RedisStore keeps the seen set in a redis SET. Selected when a redis
// address is configured; useful when several hosts take turns running
// the job and a shared file is impractical.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
	key    string
}

// NewRedisStore creates a redis-backed store
func NewRedisStore(ctx context.Context, addr string, db int, key string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisStore{
		client: client,
		ctx:    ctx,
		key:    key,
	}
}

// Load reads the seen set from redis. Connection failures degrade to an
// empty set plus a persistence error.
func (s *RedisStore) Load() (map[string]struct{}, error) {
	set := make(map[string]struct{})

	ids, err := s.client.SMembers(s.ctx, s.key).Result()
	if err != nil {
		return set, apperrors.NewPersistence("seenstore", "could not read seen set from redis", err)
	}

	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set, nil
}

// Save replaces the redis set with the given identifiers
func (s *RedisStore) Save(ids map[string]struct{}) error {
	pipe := s.client.TxPipeline()
	pipe.Del(s.ctx, s.key)
	if len(ids) > 0 {
		members := make([]interface{}, 0, len(ids))
		for id := range ids {
			members = append(members, id)
		}
		pipe.SAdd(s.ctx, s.key, members...)
	}

	if _, err := pipe.Exec(s.ctx); err != nil {
		return apperrors.NewPersistence("seenstore", "could not write seen set to redis", err)
	}
	return nil
}

// Close closes the redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
