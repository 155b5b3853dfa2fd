package concurrency

import (
	"sync"
)

// Lock is an exclusive lock that hands ownership to waiters in arrival
// order. Blocked senders on a channel are queued FIFO by the runtime, so a
// hot key never starves a late caller.
type Lock struct {
	ch chan struct{}
}

// NewLock creates an unlocked FIFO lock
func NewLock() *Lock {
	return &Lock{ch: make(chan struct{}, 1)}
}

// Lock blocks until the caller owns the lock
func (l *Lock) Lock() {
	l.ch <- struct{}{}
}

// TryLock acquires the lock only if it is free
func (l *Lock) TryLock() bool {
	select {
	case l.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

// Unlock releases the lock. Unlocking an unlocked Lock panics, like sync.Mutex.
func (l *Lock) Unlock() {
	select {
	case <-l.ch:
	default:
		panic("concurrency: unlock of unlocked Lock")
	}
}

// LockManager handles named locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the lock for the given key, creating it on first use
func (lm *LockManager) GetLock(key string) *Lock {
	if lock, ok := lm.locks.Load(key); ok {
		return lock.(*Lock)
	}
	lock, _ := lm.locks.LoadOrStore(key, NewLock())
	return lock.(*Lock)
}

// WithLock runs fn while holding the lock for key
func (lm *LockManager) WithLock(key string, fn func() error) error {
	lock := lm.GetLock(key)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}

// Forget drops the lock for key. Goroutines already queued on the old lock
// still get it; later callers get a fresh lock.
func (lm *LockManager) Forget(key string) {
	lm.locks.Delete(key)
}
