package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	leaseTTL      = 10 * time.Second
	retryInterval = 50 * time.Millisecond
)

// RedisLock serialises check-in writes across replicas with a SET NX lease.
// Key format: checkin:<normalized_id>. The lease expires after leaseTTL so a
// crashed holder cannot wedge an identifier.
type RedisLock struct {
	client *redis.Client
}

func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{client: client}
}

// Lock polls SET NX until the lease is acquired or ctx is done.
func (l *RedisLock) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := "checkin:" + key

	for {
		ok, err := l.client.SetNX(ctx, redisKey, "1", leaseTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("checkin lock: %w", err)
		}
		if ok {
			return func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = l.client.Del(ctx, redisKey).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}
