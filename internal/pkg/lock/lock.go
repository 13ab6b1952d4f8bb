package lock

import (
	"context"
	"sync"
)

// UnlockFunc releases a previously acquired lock.
type UnlockFunc func()

// Locker serializes operations that share a key. Acquire blocks until the key
// is free or ctx is done. Operations on different keys are independent.
type Locker interface {
	Acquire(ctx context.Context, key string) (UnlockFunc, error)
}

// KeyedMutex is an in-process Locker. It is sufficient when a single instance
// owns all writes; multi-instance deployments should use the Redis locker.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	ch   chan struct{} // capacity 1; holding the token means holding the lock
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*entry)}
}

func (k *KeyedMutex) Acquire(ctx context.Context, key string) (UnlockFunc, error) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return func() {
			<-e.ch
			k.release(key, e)
		}, nil
	case <-ctx.Done():
		k.release(key, e)
		return nil, ctx.Err()
	}
}

func (k *KeyedMutex) release(key string, e *entry) {
	k.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()
}
