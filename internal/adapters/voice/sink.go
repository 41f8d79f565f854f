package voice

import (
	"context"
	"io"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/jonas747/dca"
	"github.com/rs/zerolog"

	"github.com/harukit/melodybot/internal/music"
)

// Opener joins voice channels and hands back one Sink per guild.
type Opener struct {
	s   *discordgo.Session
	log zerolog.Logger
}

func NewOpener(s *discordgo.Session, log zerolog.Logger) *Opener {
	return &Opener{s: s, log: log.With().Str("component", "voice").Logger()}
}

func (o *Opener) Open(ctx context.Context, guildID, voiceChannelID string) (music.Sink, error) {
	vc, err := o.s.ChannelVoiceJoin(guildID, voiceChannelID, false, true)
	if err != nil {
		return nil, err
	}
	return &Sink{
		vc:   vc,
		done: make(chan error, 4),
		log:  o.log.With().Str("guild_id", guildID).Logger(),
	}, nil
}

// Sink streams one track at a time into a guild's voice connection. ffmpeg
// pulls the source URL and dca re-encodes it to opus frames; the encoder and
// streamer run on their own goroutines, so completion crosses back to the
// controller through the done channel.
type Sink struct {
	mu     sync.Mutex
	vc     *discordgo.VoiceConnection
	encode *dca.EncodeSession
	stream *dca.StreamingSession
	done   chan error
	closed bool
	log    zerolog.Logger
}

func (s *Sink) Play(ctx context.Context, streamURL string, volume int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := dca.StdEncodeOptions
	opts.RawOutput = true
	opts.Bitrate = 96
	opts.Volume = volumeTo256(volume)

	encode, err := dca.EncodeFile(streamURL, opts)
	if err != nil {
		return err
	}

	if err := s.vc.Speaking(true); err != nil {
		encode.Cleanup()
		return err
	}

	raw := make(chan error, 1)
	s.encode = encode
	s.stream = dca.NewStream(encode, s.vc, raw)

	go s.forward(encode, raw)
	return nil
}

// forward normalizes dca's completion signal: natural end (io.EOF) and
// forced stops both surface as a single nil event on done. A closed sink
// swallows the event; done is gone by then.
func (s *Sink) forward(encode *dca.EncodeSession, raw chan error) {
	err := <-raw
	encode.Cleanup()

	s.mu.Lock()
	if s.encode == encode {
		s.encode = nil
		s.stream = nil
		_ = s.vc.Speaking(false)
	}
	if !s.closed {
		s.done <- nil
	}
	s.mu.Unlock()

	if err != nil && err != io.EOF {
		s.log.Warn().Err(err).Msg("stream ended abnormally")
	}
}

// Stop kills the current stream; the completion event still fires.
func (s *Sink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.encode != nil {
		s.encode.Cleanup()
	}
}

func (s *Sink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream != nil {
		s.stream.SetPaused(true)
	}
}

func (s *Sink) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream != nil {
		s.stream.SetPaused(false)
	}
}

func (s *Sink) Done() <-chan error { return s.done }

// Close tears the sink down and closes done so the owner's watch loop
// terminates instead of blocking on a channel nobody feeds anymore.
func (s *Sink) Close() error {
	s.mu.Lock()
	if s.encode != nil {
		s.encode.Cleanup()
	}
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	vc := s.vc
	s.mu.Unlock()
	return vc.Disconnect()
}

// volumeTo256 maps the user-facing 0-100 scale onto ffmpeg's 0-512 range,
// with 100% = 256 (unity gain).
func volumeTo256(volume int) int {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	return volume * 256 / 100
}
