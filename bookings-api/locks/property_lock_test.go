package locks

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) PropertyLocker {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisPropertyLocker(client, 5*time.Second)
}

func TestLock_AcquireAndRelease(t *testing.T) {
	locker := newTestLocker(t)

	release, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	release()

	release, err = locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	release()
}

func TestLock_ContendedTimesOut(t *testing.T) {
	locker := newTestLocker(t)

	release, err := locker.Lock(context.Background(), 7)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, 7)
	assert.Error(t, err)
}

func TestLock_DifferentPropertiesDoNotContend(t *testing.T) {
	locker := newTestLocker(t)

	releaseA, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	releaseB, err := locker.Lock(ctx, 2)
	require.NoError(t, err)
	releaseB()
}

func TestLock_ReleasedLockCanBeReacquired(t *testing.T) {
	locker := newTestLocker(t)

	release, err := locker.Lock(context.Background(), 3)
	require.NoError(t, err)
	release()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	release, err = locker.Lock(ctx, 3)
	require.NoError(t, err)
	release()
}
