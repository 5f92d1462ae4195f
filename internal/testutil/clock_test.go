package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepClock_ZeroStartUsesEpoch(t *testing.T) {
	clock := NewStepClock(time.Time{}, time.Second)
	assert.Equal(t, Epoch, clock.Peek())
}

func TestStepClock_NowAdvances(t *testing.T) {
	clock := NewStepClock(Epoch, time.Minute)

	assert.Equal(t, Epoch, clock.Now())
	assert.Equal(t, Epoch.Add(time.Minute), clock.Now())
	assert.Equal(t, Epoch.Add(2*time.Minute), clock.Now())
	assert.Equal(t, Epoch.Add(3*time.Minute), clock.Peek())
}

func TestStepClock_Reset(t *testing.T) {
	clock := NewStepClock(Epoch, time.Second)
	clock.Now()
	clock.Now()

	clock.Reset()
	assert.Equal(t, Epoch, clock.Now())
}

func TestStepClock_ThreadSafe(t *testing.T) {
	clock := NewStepClock(Epoch, time.Second)
	const numGoroutines = 50
	const callsPerGoroutine = 20

	var wg sync.WaitGroup
	seen := make(chan time.Time, numGoroutines*callsPerGoroutine)
	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range callsPerGoroutine {
				seen <- clock.Now()
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[time.Time]bool)
	for ts := range seen {
		require.False(t, unique[ts], "duplicate reading %v", ts)
		unique[ts] = true
	}
	assert.Len(t, unique, numGoroutines*callsPerGoroutine)
	assert.Equal(t, Epoch.Add(numGoroutines*callsPerGoroutine*time.Second), clock.Peek())
}

func TestSequentialIDs(t *testing.T) {
	gen := NewSequentialIDs("run")
	assert.Equal(t, "run-1", gen.Generate())
	assert.Equal(t, "run-2", gen.Generate())

	def := NewSequentialIDs("")
	assert.Equal(t, "test-run-1", def.Generate())
}
