package dedup

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the seen set in a Redis SET, for deployments where
// the scraper runs somewhere without a durable filesystem
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed seen store under key
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "listings:seen"
	}
	return &RedisStore{
		client: client,
		key:    key,
	}
}

// Load reads all members of the set
func (s *RedisStore) Load(ctx context.Context) (map[string]struct{}, error) {
	seen := make(map[string]struct{})

	ids, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return seen, fmt.Errorf("smembers %s: %w", s.key, err)
	}

	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return seen, nil
}

// Save adds every member of the current set. The set never shrinks, so
// SADD of the full set is equivalent to a full overwrite.
func (s *RedisStore) Save(ctx context.Context, seen map[string]struct{}) error {
	if len(seen) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for id := range seen {
		pipe.SAdd(ctx, s.key, id)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("sadd %s: %w", s.key, err)
	}
	return nil
}
