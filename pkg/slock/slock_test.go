package slock_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/SyntropyNet/syntropy-pinger/pkg/slock"
)

func TestLock(t *testing.T) {
	var sl slock.ServiceLocker = &slock.AtomicServiceLock{}

	if sl.Running() {
		t.Error("Expected to be unlocked")
	}

	if !sl.TryLock() {
		t.Error("Expected to be unlocked")
	}

	if sl.TryLock() {
		t.Error("Expected to be locked")
	}

	if !sl.Running() {
		t.Error("Expected to be locked")
	}

	if !sl.TryUnlock() {
		t.Error("Expected to be locked")
	}

	if sl.TryUnlock() {
		t.Error("Expected to be unlocked")
	}
}

func TestConcurrentLock(t *testing.T) {
	var sl slock.AtomicServiceLock
	var winners int32
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sl.TryLock() {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Errorf("Expected single lock owner, got %d", winners)
	}
}
