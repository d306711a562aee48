package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/packvision/internal/domain"
)

// DefaultRedisPrefix namespaces every key written by the Redis backend.
const DefaultRedisPrefix = "packvision:"

// redisKV stores documents as plain Redis strings without expiry.
type redisKV struct {
	client redis.Cmdable
	prefix string
}

// NewRedisKV constructs a KVRepo on top of a go-redis client. Keys are
// stored as prefix+key.
func NewRedisKV(client redis.Cmdable, prefix string) KVRepo {
	return &redisKV{client: client, prefix: prefix}
}

func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("repo.redisKV.Get %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.redisKV.Get %q: %w", key, err)
	}
	return v, nil
}

func (r *redisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("repo.redisKV.Set %q: %w", key, err)
	}
	return nil
}

func (r *redisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("repo.redisKV.Delete %q: %w", key, err)
	}
	return nil
}
