package domain

import (
	"time"

	"github.com/google/uuid"
)

// RepeatMode controls what Advance does when the current track ends.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatOne
	RepeatAll
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatOne:
		return "one"
	case RepeatAll:
		return "all"
	default:
		return "off"
	}
}

// Track is a resolved, playable unit. Immutable after resolution except for
// StreamURL, which is filled in lazily right before the track is played
// (stream locators expire quickly upstream, so resolving them early is waste).
type Track struct {
	ID          string
	Title       string
	WebpageURL  string
	StreamURL   string
	Duration    time.Duration // 0 = unknown
	Thumbnail   string
	RequesterID string
}

// NewTrack fills in the ID; everything else comes from the resolver.
func NewTrack(title, webpageURL string) *Track {
	return &Track{ID: uuid.NewString(), Title: title, WebpageURL: webpageURL}
}
