package ratelimit

import (
	"sync"
	"time"

	"github.com/ternarybob/arbor"
)

// sweepInterval controls how often idle client windows are removed
const sweepInterval = 1 * time.Minute

// SlidingWindowLimiter tracks request timestamps per client key and
// allows at most maxRequests within the trailing window. Check-and-record
// is atomic per key: the outer lock guards the map, each window carries
// its own mutex.
type SlidingWindowLimiter struct {
	mu          sync.RWMutex
	windows     map[string]*clientWindow
	maxRequests int
	window      time.Duration
	now         func() time.Time
	lastSweep   time.Time
	logger      arbor.ILogger
}

// clientWindow holds the recent request timestamps for one client
type clientWindow struct {
	mu     sync.Mutex
	stamps []time.Time
}

// NewSlidingWindowLimiter creates a limiter allowing maxRequests per window
func NewSlidingWindowLimiter(maxRequests int, window time.Duration, logger arbor.ILogger) *SlidingWindowLimiter {
	l := &SlidingWindowLimiter{
		windows:     make(map[string]*clientWindow),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		logger:      logger,
	}
	l.lastSweep = l.now()
	return l
}

// WithClock overrides the time source, used by tests
func (l *SlidingWindowLimiter) WithClock(now func() time.Time) *SlidingWindowLimiter {
	l.now = now
	l.lastSweep = now()
	return l
}

// Allow reports whether the client may proceed, recording the request
// timestamp when it may. Timestamps outside the window are evicted lazily
// on each check.
func (l *SlidingWindowLimiter) Allow(key string) bool {
	l.maybeSweep()

	w := l.getWindow(key)

	w.mu.Lock()
	defer w.mu.Unlock()

	now := l.now()
	w.evict(now.Add(-l.window))

	if len(w.stamps) >= l.maxRequests {
		l.logger.Debug().
			Str("client", key).
			Int("requests_in_window", len(w.stamps)).
			Msg("Rate limit exceeded")
		return false
	}

	w.stamps = append(w.stamps, now)
	return true
}

// ResetTime returns when the client's oldest surviving request leaves the
// window. Clients with no recorded requests reset immediately.
func (l *SlidingWindowLimiter) ResetTime(key string) time.Time {
	w := l.getWindow(key)

	w.mu.Lock()
	defer w.mu.Unlock()

	now := l.now()
	w.evict(now.Add(-l.window))

	if len(w.stamps) == 0 {
		return now
	}
	return w.stamps[0].Add(l.window)
}

// ActiveClients returns the number of tracked client windows
func (l *SlidingWindowLimiter) ActiveClients() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.windows)
}

// getWindow returns the window for key, creating it if needed
func (l *SlidingWindowLimiter) getWindow(key string) *clientWindow {
	l.mu.RLock()
	w, ok := l.windows[key]
	l.mu.RUnlock()
	if ok {
		return w
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Re-check after acquiring write lock
	if w, ok := l.windows[key]; ok {
		return w
	}
	w = &clientWindow{}
	l.windows[key] = w
	return w
}

// maybeSweep removes windows with no surviving timestamps so idle clients
// do not grow the map without bound.
func (l *SlidingWindowLimiter) maybeSweep() {
	l.mu.RLock()
	due := l.now().Sub(l.lastSweep) >= sweepInterval
	l.mu.RUnlock()
	if !due {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now

	cutoff := now.Add(-l.window)
	removed := 0
	for key, w := range l.windows {
		w.mu.Lock()
		w.evict(cutoff)
		empty := len(w.stamps) == 0
		w.mu.Unlock()
		if empty {
			delete(l.windows, key)
			removed++
		}
	}

	if removed > 0 {
		l.logger.Debug().
			Int("removed", removed).
			Int("remaining", len(l.windows)).
			Msg("Swept idle rate limit windows")
	}
}

// evict drops timestamps at or before the cutoff. Caller holds w.mu.
func (w *clientWindow) evict(cutoff time.Time) {
	idx := 0
	for idx < len(w.stamps) && !w.stamps[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[idx:]...)
	}
}
