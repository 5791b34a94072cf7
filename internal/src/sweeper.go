package src

// The background sweep proactively removes expired entries so that unread
// keys do not pile up until their next lazy check.

import "time"

func (store *EntryStore[T]) runSweeper() {
	ticker := time.NewTicker(store.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-store.ctx.Done():
			return
		case <-ticker.C:
			store.sweep()
		}
	}
}

// sweep deletes every expired entry in a single pass under the store lock.
// Sweeps run sequentially on one goroutine, so at most one is in flight. A
// panic while scanning is reported and the schedule keeps running.
func (store *EntryStore[T]) sweep() {
	defer func() {
		if r := recover(); r != nil {
			store.logger.Error("cache sweep failed", "panic", r)
		}
	}()

	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return
	}

	now := store.now()
	removed := 0
	for key, entry := range store.entries {
		if entry.expired(now) {
			store.removeLocked(key)
			store.expiredTotal++
			removed++
		}
	}
	store.lastCleanup = now

	if removed > 0 {
		store.logger.Debug("cache sweep removed expired entries", "removed", removed)
	}
}
