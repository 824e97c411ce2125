package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisPrefix = "sess:"

type RedisStore struct{ C *redis.Client }

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{C: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *RedisStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return r.C.Set(ctx, redisPrefix+token, userID, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, token string) (string, error) {
	v, err := r.C.Get(ctx, redisPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	return v, err
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.C.Del(ctx, redisPrefix+token).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }
func (r *RedisStore) Close() error                   { return r.C.Close() }
