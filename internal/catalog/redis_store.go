package catalog

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const clearBatchSize = 500

// RedisStore keeps the catalog in Redis: one hash per item holding its
// index values, and one set per (index, value) holding the matching uids.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore builds a store whose keys all start with prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "catalog"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) docKey(uid string) string {
	return s.prefix + ":doc:" + uid
}

func (s *RedisStore) postingKey(index, value string) string {
	return s.prefix + ":idx:" + index + ":" + value
}

func (s *RedisStore) uidsKey() string {
	return s.prefix + ":uids"
}

func (s *RedisStore) Update(ctx context.Context, uid string, set map[string]string, unset []string) error {
	old, err := s.client.HGetAll(ctx, s.docKey(uid)).Result()
	if err != nil {
		return fmt.Errorf("load catalog entry %s: %w", uid, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		values := make(map[string]interface{}, len(set))
		for index, value := range set {
			if prev, ok := old[index]; ok && prev != value {
				pipe.SRem(ctx, s.postingKey(index, prev), uid)
			}
			pipe.SAdd(ctx, s.postingKey(index, value), uid)
			values[index] = value
		}
		if len(values) > 0 {
			pipe.HSet(ctx, s.docKey(uid), values)
		}
		for _, index := range unset {
			if prev, ok := old[index]; ok {
				pipe.SRem(ctx, s.postingKey(index, prev), uid)
				pipe.HDel(ctx, s.docKey(uid), index)
			}
		}
		pipe.SAdd(ctx, s.uidsKey(), uid)
		return nil
	})
	if err != nil {
		return fmt.Errorf("update catalog entry %s: %w", uid, err)
	}
	return nil
}

func (s *RedisStore) Values(ctx context.Context, uid string) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, s.docKey(uid)).Result()
	if err != nil {
		return nil, fmt.Errorf("load catalog entry %s: %w", uid, err)
	}
	return values, nil
}

func (s *RedisStore) Remove(ctx context.Context, uid string) error {
	old, err := s.client.HGetAll(ctx, s.docKey(uid)).Result()
	if err != nil {
		return fmt.Errorf("load catalog entry %s: %w", uid, err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for index, value := range old {
			pipe.SRem(ctx, s.postingKey(index, value), uid)
		}
		pipe.Del(ctx, s.docKey(uid))
		pipe.SRem(ctx, s.uidsKey(), uid)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove catalog entry %s: %w", uid, err)
	}
	return nil
}

func (s *RedisStore) Match(ctx context.Context, criteria map[string]string) ([]string, error) {
	if len(criteria) == 0 {
		return s.client.SMembers(ctx, s.uidsKey()).Result()
	}
	keys := make([]string, 0, len(criteria))
	for index, value := range criteria {
		keys = append(keys, s.postingKey(index, value))
	}
	uids, err := s.client.SInter(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	return uids, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+":*", clearBatchSize).Iterator()
	batch := make([]string, 0, clearBatchSize)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == clearBatchSize {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("clear catalog: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
	}
	return nil
}
