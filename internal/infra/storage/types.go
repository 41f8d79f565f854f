package storage

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

type GuildSettings struct {
	GuildID              string
	DefaultVolume        int
	NotifyChannelID      string
	MusicEnabled         bool
	GamesEnabled         bool
	CreatedAt, UpdatedAt time.Time
}

// For partial updates from /settings set
type GuildSettingsUpdate struct {
	DefaultVolume   *int
	NotifyChannelID *string
	MusicEnabled    *bool
	GamesEnabled    *bool
}

type TrackRow struct {
	URL             string
	Title           string
	DurationSeconds int
	Thumbnail       string
}

type Favorite struct {
	UserID  string
	Track   TrackRow
	AddedAt time.Time
}

type Playlist struct {
	UserID    string
	Name      string
	TrackURLs []string
	CreatedAt time.Time
}

type PlayEvent struct {
	ID       int64
	GuildID  string
	UserID   string
	Title    string
	URL      string
	PlayedAt time.Time
}

type TrackCount struct {
	Title string
	URL   string
	Plays int
}
