package searcher

import "sync/atomic"

// rebuildLock admits at most one index rebuild at a time without blocking callers
type rebuildLock struct {
	state atomic.Int32 // 0 = idle, 1 = rebuilding
}

// tryAcquire returns false if another rebuild holds the lock
func (l *rebuildLock) tryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// release must only be called by the goroutine that acquired the lock
func (l *rebuildLock) release() {
	l.state.Store(0)
}
