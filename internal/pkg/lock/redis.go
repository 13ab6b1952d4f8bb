package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockTTL       = 15 * time.Second
	retryInterval = 50 * time.Millisecond
)

// RedisLocker is a Locker backed by Redis SET NX, for deployments running more
// than one instance against the same database. The TTL bounds how long a lock
// can outlive a crashed holder.
type RedisLocker struct {
	client *redis.Client
}

// NewRedisLocker connects to Redis and verifies the connection.
func NewRedisLocker(addr string) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisLocker{client: client}, nil
}

func (r *RedisLocker) Acquire(ctx context.Context, key string) (UnlockFunc, error) {
	lockKey := "lock:" + key

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, lockKey, "1", lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", lockKey, err)
		}
		if ok {
			return func() {
				// Release is best-effort; the TTL cleans up after failures.
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				r.client.Del(releaseCtx, lockKey)
			}, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Close closes the underlying Redis client.
func (r *RedisLocker) Close() error {
	return r.client.Close()
}
