package discord

import (
	"sync"
	"time"
)

// playThrottle spaces out /play per user. Resolution is the one command that
// fans out to the resolver service, so rapid-fire requests get a cooldown.
type playThrottle struct {
	mu     sync.Mutex
	until  map[string]time.Time
	window time.Duration
}

func newPlayThrottle(window time.Duration) *playThrottle {
	return &playThrottle{until: make(map[string]time.Time), window: window}
}

// Allow reports whether the user may fire now and, if so, starts their
// cooldown window.
func (t *playThrottle) Allow(userID string) bool {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	if u, ok := t.until[userID]; ok && now.Before(u) {
		return false
	}
	t.until[userID] = now.Add(t.window)
	return true
}
