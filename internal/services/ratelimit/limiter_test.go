package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
)

// fakeClock is an adjustable time source for limiter tests
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(maxRequests int, window time.Duration, clock *fakeClock) *SlidingWindowLimiter {
	return NewSlidingWindowLimiter(maxRequests, window, arbor.NewLogger()).WithClock(clock.Now)
}

func TestAllowUpToLimit(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(3, time.Minute, clock)

	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"), "fourth request within window must be denied")
}

func TestWindowExpiryReadmits(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(2, time.Minute, clock)

	assert.True(t, l.Allow("client"))
	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))

	clock.Advance(61 * time.Second)
	assert.True(t, l.Allow("client"), "expired timestamps must be evicted")
}

func TestKeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(1, time.Minute, clock)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "another client must have its own window")
}

func TestResetTime(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(2, time.Minute, clock)

	start := clock.Now()
	assert.True(t, l.Allow("client"))

	clock.Advance(10 * time.Second)
	assert.True(t, l.Allow("client"))

	// Oldest surviving stamp is at start, so reset is start + window
	assert.Equal(t, start.Add(time.Minute), l.ResetTime("client"))
}

func TestResetTimeEmptyWindow(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(2, time.Minute, clock)

	assert.Equal(t, clock.Now(), l.ResetTime("unknown"))
}

func TestPartialExpiry(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(2, time.Minute, clock)

	assert.True(t, l.Allow("client"))
	clock.Advance(40 * time.Second)
	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))

	// First stamp falls out of the window, second remains
	clock.Advance(25 * time.Second)
	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))
}

func TestSweepRemovesIdleClients(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(5, time.Minute, clock)

	assert.True(t, l.Allow("idle"))
	assert.True(t, l.Allow("active"))
	assert.Equal(t, 2, l.ActiveClients())

	// Past the window and the sweep interval; next check triggers cleanup
	clock.Advance(3 * time.Minute)
	assert.True(t, l.Allow("active"))

	assert.Equal(t, 1, l.ActiveClients())
}

func TestConcurrentAllowSameKey(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(50, time.Minute, clock)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed, "check-and-record must be atomic per key")
}
