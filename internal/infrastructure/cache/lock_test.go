package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/society/backend/internal/infrastructure/config"
)

func TestInMemoryLocker(t *testing.T) {
	ctx := context.Background()
	l := NewInMemoryLocker()
	defer l.Close()

	t.Run("second acquire is refused while held", func(t *testing.T) {
		token, ok, err := l.Acquire(ctx, "k1", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
		assert.NotEmpty(t, token)

		_, ok, err = l.Acquire(ctx, "k1", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, l.Release(ctx, "k1", token))
		_, ok, err = l.Acquire(ctx, "k1", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("release with a stale token keeps the lock", func(t *testing.T) {
		_, ok, err := l.Acquire(ctx, "k2", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, l.Release(ctx, "k2", "not-the-owner"))
		_, ok, _ = l.Acquire(ctx, "k2", time.Minute)
		assert.False(t, ok)
	})

	t.Run("expired lock can be taken", func(t *testing.T) {
		_, ok, err := l.Acquire(ctx, "k3", 10*time.Millisecond)
		require.NoError(t, err)
		require.True(t, ok)

		time.Sleep(20 * time.Millisecond)
		_, ok, err = l.Acquire(ctx, "k3", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInMemoryLocker_Concurrent(t *testing.T) {
	ctx := context.Background()
	l := NewInMemoryLocker()
	defer l.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := l.Acquire(ctx, "same-email", time.Minute); ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
}

func TestInMemoryLocker_Cleanup(t *testing.T) {
	l := NewInMemoryLocker()
	defer l.Close()

	_, _, _ = l.Acquire(context.Background(), "k", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	l.cleanup()
	assert.Equal(t, 0, l.Size())
	assert.NoError(t, l.Close())
}

func TestLockerFactory_FallsBackToMemory(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := NewLockerFactory(config.RedisConfig{Host: "127.0.0.1", Port: 1}, WithLogger(zap.New(core)))

	locker, err := f.CreateLocker()
	require.NoError(t, err)
	defer locker.Close()

	assert.IsType(t, &InMemoryLocker{}, locker)
	assert.Equal(t, 1, logs.Len())
}

func TestLockerFactory_NoFallback(t *testing.T) {
	f := NewLockerFactory(config.RedisConfig{Host: "127.0.0.1", Port: 1}, WithInMemoryFallback(false))

	_, err := f.CreateLocker()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Redis required")
}

func TestRedisLocker_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	l := NewRedisLockerWithClient(client)
	defer l.Close()

	token, acquired, err := l.Acquire(context.Background(), "provision:asha@example.com", time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to acquire lock")
	assert.False(t, acquired)
	assert.Empty(t, token)

	err = l.Release(context.Background(), "provision:asha@example.com", "token")
	assert.ErrorContains(t, err, "failed to release lock")
}
