// Package lock provides per-identifier serialisation of check-in writes.
package lock

import (
	"context"
	"sync"
)

// KeyedMutex serialises callers per key within a single process. Entries are
// reference counted and removed once the last holder releases, so the map
// stays bounded by the number of concurrently contended identifiers.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*entry)}
}

// Lock acquires the mutex for key. ctx is accepted for interface parity with
// the distributed locker; acquisition itself is not interruptible.
func (k *KeyedMutex) Lock(_ context.Context, key string) (func(), error) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}, nil
}
