package locking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"event_marketplace/internal/usecase/interfaces"
)

// MemoryLocker serializes writers inside one process. It is enough for a
// single api replica and for tests; multi-replica deployments use
// RedisLocker. A key's slot lives only while someone holds or waits on it.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
	wait  time.Duration
}

type slot struct {
	ch   chan struct{}
	refs int
}

var _ interfaces.ILocker = (*MemoryLocker)(nil)

func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &MemoryLocker{slots: make(map[string]*slot), wait: wait}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.acquire(key)
	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.release(key, s)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, s)
		return nil, ctx.Err()
	case <-timer.C:
		l.release(key, s)
		return nil, fmt.Errorf("%w: %s", interfaces.ErrLockTimeout, key)
	}
}

func (l *MemoryLocker) acquire(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *MemoryLocker) release(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}
