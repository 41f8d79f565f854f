package resolver

import (
	"time"

	"github.com/harukit/melodybot/internal/domain"
)

type resolveDTO struct {
	Entries []entryDTO `json:"entries"`
}

type entryDTO struct {
	Title      string `json:"title"`
	WebpageURL string `json:"webpage_url"`
	Duration   int    `json:"duration"` // seconds, 0 = unknown
	Thumbnail  string `json:"thumbnail"`
}

type streamDTO struct {
	StreamURL string `json:"stream_url"`
}

func (e entryDTO) track() *domain.Track {
	t := domain.NewTrack(e.Title, e.WebpageURL)
	t.Duration = time.Duration(e.Duration) * time.Second
	t.Thumbnail = e.Thumbnail
	return t
}
