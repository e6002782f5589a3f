package keylock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Registry hands out per-key exclusive locks. Lockers for distinct keys
// never contend; lockers for the same key serialize through a single
// channel slot, so a released lock is handed to exactly one waiter.
type Registry struct {
	mutex   sync.Mutex
	entries map[string]*entry
}

type entry struct {
	slot chan struct{}
	refs int
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Locker is a single-use handle on one key. A fresh Locker is created per
// operation; it is not safe for concurrent use by multiple goroutines.
type Locker struct {
	registry *Registry
	key      string
	held     *entry
}

func (r *Registry) NewLocker(key string) *Locker {
	return &Locker{registry: r, key: key}
}

func (r *Registry) retain(key string) *entry {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	e, ok := r.entries[key]
	if !ok {
		e = &entry{slot: make(chan struct{}, 1)}
		r.entries[key] = e
	}
	e.refs++
	return e
}

func (r *Registry) release(key string, e *entry) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(r.entries, key)
	}
}

// Lock blocks until the key is free or ctx is done.
func (l *Locker) Lock(ctx context.Context) error {
	if l.held != nil {
		return fmt.Errorf("lock for key %s is already held", l.key)
	}
	e := l.registry.retain(l.key)
	select {
	case e.slot <- struct{}{}:
		l.held = e
		return nil
	case <-ctx.Done():
		l.registry.release(l.key, e)
		return fmt.Errorf("failed to acquire lock for key %s: %w", l.key, ctx.Err())
	}
}

// WaitLock acquires the lock with an upper bound on the wait.
func (l *Locker) WaitLock(ctx context.Context, waitTimeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()
	return l.Lock(waitCtx)
}

// Unlock releases the key so the next waiter (if any) proceeds.
func (l *Locker) Unlock() error {
	if l.held == nil {
		return fmt.Errorf("unlock failed, lock for key %s is not held", l.key)
	}
	e := l.held
	l.held = nil
	<-e.slot
	l.registry.release(l.key, e)
	return nil
}
