package lock

import (
	"context"
	"sync"
	"testing"
)

func TestKeyedMutex_SerialisesSameKey(t *testing.T) {
	k := NewKeyedMutex()

	const workers = 16
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(context.Background(), "pay_1")
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			// Unsynchronised increment: the race detector flags any
			// overlap between holders.
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("expected %d increments, got %d", workers, counter)
	}
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	k := NewKeyedMutex()

	unlockA, err := k.Lock(context.Background(), "pay_1")
	if err != nil {
		t.Fatalf("lock a: %v", err)
	}
	defer unlockA()

	// A different key must not block behind pay_1.
	done := make(chan struct{})
	go func() {
		unlockB, err := k.Lock(context.Background(), "pay_2")
		if err != nil {
			t.Errorf("lock b: %v", err)
			return
		}
		unlockB()
		close(done)
	}()

	<-done
}

func TestKeyedMutex_EntryRemovedAfterRelease(t *testing.T) {
	k := NewKeyedMutex()

	unlock, err := k.Lock(context.Background(), "pay_1")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	unlock()

	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.entries) != 0 {
		t.Fatalf("expected empty entry map, got %d entries", len(k.entries))
	}
}
