package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()
	ctx := context.Background()

	const workers = 32
	var inCritical, maxInCritical int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock, err := km.Acquire(ctx, "room-1")
			require.NoError(t, err)
			defer unlock()

			mu.Lock()
			inCritical++
			if inCritical > maxInCritical {
				maxInCritical = inCritical
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inCritical--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInCritical, "at most one holder per key at a time")
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()
	ctx := context.Background()

	unlockA, err := km.Acquire(ctx, "room-a")
	require.NoError(t, err)
	defer unlockA()

	// A held lock on another key must not block this acquire.
	done := make(chan struct{})
	go func() {
		unlockB, err := km.Acquire(ctx, "room-b")
		assert.NoError(t, err)
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("acquire on independent key blocked")
	}
}

func TestKeyedMutexHonorsContext(t *testing.T) {
	km := NewKeyedMutex()

	unlock, err := km.Acquire(context.Background(), "room-1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = km.Acquire(ctx, "room-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestKeyedMutexCleansUpEntries(t *testing.T) {
	km := NewKeyedMutex()

	unlock, err := km.Acquire(context.Background(), "room-1")
	require.NoError(t, err)
	unlock()

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.entries, "released keys must not leak")
}
