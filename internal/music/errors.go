package music

import "errors"

var (
	ErrNotPlaying      = errors.New("nothing is playing")
	ErrAlreadyStopped  = errors.New("playback already stopped")
	ErrSinkUnavailable = errors.New("voice sink unavailable")
	ErrBadVolume       = errors.New("volume must be between 0 and 100")
)
