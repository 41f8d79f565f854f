package music

import (
	"context"

	"github.com/harukit/melodybot/internal/domain"
)

// Implemented by internal/adapters/resolver.Client
type Resolver interface {
	// Resolve turns a URL (single video or playlist) into playable tracks.
	// Playlist resolution is capped by the resolver; callers learn the real
	// count from the returned slice.
	Resolve(ctx context.Context, url string) ([]*domain.Track, error)
	// Search returns up to limit candidate tracks for a free-text query.
	// Stream locators are not resolved.
	Search(ctx context.Context, query string, limit int) ([]*domain.Track, error)
	// StreamURL fetches the stream locator for a track about to play.
	StreamURL(ctx context.Context, t *domain.Track) (string, error)
}

// Sink is one guild's audio output. A Sink plays at most one stream at a
// time; Done delivers exactly one event per started stream, whether it
// finished naturally or was stopped. Close closes the Done channel, which is
// how the controller's watch loop learns the sink is gone.
type Sink interface {
	Play(ctx context.Context, streamURL string, volume int) error
	Stop()
	Pause()
	Resume()
	Done() <-chan error
	Close() error
}

// SinkOpener joins a voice channel and hands back the session's sink.
// Implemented by internal/adapters/voice.Opener.
type SinkOpener interface {
	Open(ctx context.Context, guildID, voiceChannelID string) (Sink, error)
}

// Notifier posts informational messages to a text channel. Failures are the
// implementation's problem; playback never depends on them.
// Implemented by internal/adapters/discord.ChannelNotifier.
type Notifier interface {
	NowPlaying(channelID string, t *domain.Track)
	Info(channelID, title, msg string)
}

// Implemented by internal/infra/storage.HistoryRepo
type PlayRecorder interface {
	RecordPlay(ctx context.Context, guildID, userID, title, url string) error
}
