package keylock

import (
	"sync"
	"testing"
	"time"
)

func TestLock_MutualExclusionPerKey(t *testing.T) {
	r := NewRegistry()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			release := r.Lock("activity:1")
			defer release()
			// Non-atomic increment; only safe if the lock serializes us.
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestLock_IndependentKeysDoNotBlock(t *testing.T) {
	r := NewRegistry()

	releaseA := r.Lock("activity:a")
	defer releaseA()

	done := make(chan struct{})
	go func() {
		release := r.Lock("activity:b")
		release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on an unrelated key blocked")
	}
}

func TestLock_EntriesReclaimed(t *testing.T) {
	r := NewRegistry()

	release := r.Lock("user:1")
	release()

	r.mu.Lock()
	n := len(r.locks)
	r.mu.Unlock()

	if n != 0 {
		t.Errorf("registry still holds %d entries after release", n)
	}
}

func TestRelease_Idempotent(t *testing.T) {
	r := NewRegistry()

	release := r.Lock("user:1")
	release()
	release() // second call must be a no-op, not an unlock of someone else

	done := make(chan struct{})
	go func() {
		rel := r.Lock("user:1")
		rel()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock unavailable after double release")
	}
}
