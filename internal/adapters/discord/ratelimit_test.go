package discord

import (
	"testing"
	"time"
)

func TestPlayThrottle(t *testing.T) {
	th := newPlayThrottle(50 * time.Millisecond)

	if !th.Allow("u1") {
		t.Fatal("first call must pass")
	}
	if th.Allow("u1") {
		t.Fatal("second call inside the window must be throttled")
	}
	if !th.Allow("u2") {
		t.Fatal("users are throttled independently")
	}

	time.Sleep(60 * time.Millisecond)
	if !th.Allow("u1") {
		t.Fatal("an expired window must re-admit")
	}
}
