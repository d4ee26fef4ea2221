package lock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithLockSerializesSameID(t *testing.T) {
	l := NewIdLocker()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.WithLock(7, func() error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}

	wg.Wait()
	require.Equal(t, 1, maxSeen)
	require.Equal(t, 0, l.size())
}

func TestDifferentIDsDoNotBlock(t *testing.T) {
	l := NewIdLocker()
	l.AcquireLock(1)
	defer l.ReleaseLock(1)

	done := make(chan struct{})
	go func() {
		_ = l.WithLock(2, func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on id 2 blocked behind id 1")
	}
}
