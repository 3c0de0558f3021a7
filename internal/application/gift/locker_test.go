package gift

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccountLocker_SerializesSameAccount(t *testing.T) {
	locker := newAccountLocker()

	const iterations = 100
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < iterations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock("user123")
			defer unlock()
			// ロック下では競合しないため、非アトミックな更新でも安全
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, iterations, counter)
}

func TestAccountLocker_DifferentAccountsDoNotBlock(t *testing.T) {
	locker := newAccountLocker()

	unlockA := locker.Lock("alice")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locker.Lock("bob")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different account blocked")
	}
}

func TestAccountLocker_ReleasesEntries(t *testing.T) {
	locker := newAccountLocker()

	unlock := locker.Lock("user123")
	unlock()

	locker.mu.Lock()
	defer locker.mu.Unlock()
	assert.Empty(t, locker.entries)
}
