package storage

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestLockManagerReturnsFunctionError(t *testing.T) {
	lm := NewLockManager()
	want := errors.New("boom")
	if err := lm.Execute(WriteOperation, func() error { return want }); !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

func TestLockManagerWritesAreExclusive(t *testing.T) {
	lm := NewLockManager()
	var inside int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.Execute(WriteOperation, func() error {
				if n := atomic.AddInt32(&inside, 1); n != 1 {
					t.Errorf("%d writers inside the lock", n)
				}
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()
}

func TestLockManagerReleasesOnPanic(t *testing.T) {
	lm := NewLockManager()
	func() {
		defer func() { _ = recover() }()
		_ = lm.Execute(WriteOperation, func() error { panic("boom") })
	}()

	done := make(chan struct{})
	go func() {
		_ = lm.Execute(ReadOperation, func() error { return nil })
		close(done)
	}()
	<-done
}
