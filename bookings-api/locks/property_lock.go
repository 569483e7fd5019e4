package locks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PropertyLocker serializes booking creation per property so the
// availability check and the insert run as one critical section.
type PropertyLocker interface {
	// Lock blocks until the lock for the property is held or ctx is done.
	// The returned function releases the lock.
	Lock(ctx context.Context, propertyID uint) (func(), error)
}

type redisPropertyLocker struct {
	client     *redis.Client
	ttl        time.Duration
	retryDelay time.Duration
}

// NewRedisPropertyLocker builds a redis-backed advisory lock. The TTL
// bounds how long a crashed holder can block a property.
func NewRedisPropertyLocker(client *redis.Client, ttl time.Duration) PropertyLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &redisPropertyLocker{
		client:     client,
		ttl:        ttl,
		retryDelay: 25 * time.Millisecond,
	}
}

func (l *redisPropertyLocker) Lock(ctx context.Context, propertyID uint) (func(), error) {
	key := fmt.Sprintf("booking_lock:%d", propertyID)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire property lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for property lock: %w", ctx.Err())
		case <-time.After(l.retryDelay):
		}
	}

	release := func() {
		// Only delete the lock if we still own it; an expired lock may have
		// been re-acquired by someone else.
		current, err := l.client.Get(context.Background(), key).Result()
		if err != nil || current != token {
			return
		}
		l.client.Del(context.Background(), key)
	}

	return release, nil
}
