package music

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harukit/melodybot/internal/domain"
)

// State of one guild's playback session.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	// StateTransitioning covers the window between a track ending and the
	// sink confirming the start of the next one.
	StateTransitioning
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateTransitioning:
		return "transitioning"
	default:
		return "idle"
	}
}

// maxSkipAhead bounds how many consecutive broken tracks a single transition
// may skip past before the session gives up and goes idle. Without the cap a
// queue where every item fails to resolve under repeat mode would spin forever.
const maxSkipAhead = 10

// session is the per-guild playback context. All fields are guarded by mu;
// sink callbacks from the voice goroutine re-enter through onTrackEnd, which
// takes the same lock, so queue mutations never interleave within one guild.
type session struct {
	mu        sync.Mutex
	guildID   string
	queue     *Queue
	sink      Sink
	state     State
	votes     map[string]struct{}
	idleSince time.Time
	volume    int
}

// Player owns every guild's session and drives all playback transitions.
type Player struct {
	mu       sync.Mutex
	sessions map[string]*session

	resolver Resolver
	opener   SinkOpener
	notifier Notifier
	recorder PlayRecorder
	log      zerolog.Logger

	defaultVolume int
}

func NewPlayer(resolver Resolver, opener SinkOpener, notifier Notifier, recorder PlayRecorder, log zerolog.Logger) *Player {
	return &Player{
		sessions:      make(map[string]*session),
		resolver:      resolver,
		opener:        opener,
		notifier:      notifier,
		recorder:      recorder,
		log:           log.With().Str("component", "player").Logger(),
		defaultVolume: 50,
	}
}

// session returns the guild's session, creating it on first use. Sessions are
// never removed from the map; repeat/shuffle settings outlive a teardown.
func (p *Player) session(guildID string) *session {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sessions[guildID]
	if !ok {
		s = &session{
			guildID: guildID,
			queue:   NewQueue(),
			votes:   make(map[string]struct{}),
			volume:  p.defaultVolume,
		}
		p.sessions[guildID] = s
	}
	return s
}

type EnqueueResult struct {
	Added   []*domain.Track
	Started bool
}

// Enqueue resolves the input (URL, playlist URL or free-text query), appends
// the results to the guild's queue and starts playback if nothing is playing.
func (p *Player) Enqueue(ctx context.Context, guildID, voiceChannelID, notifyChannelID, requesterID, input string) (EnqueueResult, error) {
	var (
		tracks []*domain.Track
		err    error
	)
	if isURL(input) {
		tracks, err = p.resolver.Resolve(ctx, input)
	} else {
		tracks, err = p.resolver.Search(ctx, input, 1)
	}
	if err != nil {
		return EnqueueResult{}, err
	}
	return p.EnqueueTracks(ctx, guildID, voiceChannelID, notifyChannelID, requesterID, tracks)
}

// EnqueueTracks appends already-resolved tracks. Saved favorites and playlists
// come through here; their stream locators are still fetched lazily at play
// time.
func (p *Player) EnqueueTracks(ctx context.Context, guildID, voiceChannelID, notifyChannelID, requesterID string, tracks []*domain.Track) (EnqueueResult, error) {
	for _, t := range tracks {
		t.RequesterID = requesterID
	}

	s := p.session(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()

	// the sink comes up before anything touches the queue, so a failed join
	// leaves no stale backlog behind for the next attempt
	if s.sink == nil {
		sink, err := p.opener.Open(ctx, guildID, voiceChannelID)
		if err != nil {
			return EnqueueResult{}, ErrSinkUnavailable
		}
		s.sink = sink
		go p.watch(s, sink)
	}

	s.queue.NotifyChannelID = notifyChannelID
	for _, t := range tracks {
		s.queue.Enqueue(t)
	}

	started := false
	if s.state == StateIdle {
		s.state = StateTransitioning
		p.playNextLocked(s)
		started = s.state == StatePlaying
	}
	return EnqueueResult{Added: tracks, Started: started}, nil
}

// watch forwards sink completion events back into the controller. The voice
// transport runs on its own goroutine; crossing back through onTrackEnd keeps
// every queue mutation under the session lock.
func (p *Player) watch(s *session, sink Sink) {
	for err := range sink.Done() {
		p.onTrackEnd(s, sink, err)
	}
}

func (p *Player) onTrackEnd(s *session, sink Sink, playErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sink != sink {
		return // sink was torn down and replaced; stale event
	}
	if playErr != nil {
		p.log.Warn().Str("guild_id", s.guildID).Err(playErr).Msg("track ended with error")
	}
	switch s.state {
	case StatePlaying, StatePaused, StateTransitioning:
		s.state = StateTransitioning
		p.playNextLocked(s)
	default:
		// explicit stop already reset the session; nothing to advance
	}
}

// playNextLocked advances the queue and starts the next track. Broken tracks
// are skipped past rather than stalling the queue; after maxSkipAhead
// consecutive failures the session goes idle and the channel is told once.
// Caller holds s.mu and has set state to StateTransitioning.
func (p *Player) playNextLocked(s *session) {
	failures := 0
	for {
		t := s.queue.Advance()
		if t == nil {
			s.state = StateIdle
			p.resetVotesLocked(s)
			return
		}

		if err := p.startTrackLocked(s, t); err != nil {
			failures++
			p.log.Warn().
				Str("guild_id", s.guildID).
				Str("track", t.Title).
				Int("failures", failures).
				Err(err).
				Msg("could not start track, skipping ahead")
			if failures >= maxSkipAhead {
				s.state = StateIdle
				p.resetVotesLocked(s)
				p.notifyInfo(s, "Playback stopped", "Too many tracks in a row failed to play.")
				return
			}
			continue
		}

		s.state = StatePlaying
		s.idleSince = time.Time{}
		p.resetVotesLocked(s)

		// fire-and-forget: notification and history logging must never
		// abort playback
		p.notifyNowPlaying(s, t)
		p.recordPlay(s, t)
		return
	}
}

func (p *Player) startTrackLocked(s *session, t *domain.Track) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if t.StreamURL == "" {
		url, err := p.resolver.StreamURL(ctx, t)
		if err != nil {
			return err
		}
		t.StreamURL = url
	}
	return s.sink.Play(ctx, t.StreamURL, s.volume)
}

// Skip force-stops the current track; the sink's completion event drives the
// same transition path as a natural finish.
func (p *Player) Skip(guildID string) error {
	s := p.session(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying && s.state != StatePaused {
		return ErrNotPlaying
	}
	s.state = StateTransitioning
	s.sink.Stop()
	return nil
}

// Stop clears the queue and stops the sink but keeps the voice connection
// open; the idle monitor reclaims it later if nothing else gets played.
func (p *Player) Stop(guildID string) error {
	s := p.session(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sink == nil {
		return ErrAlreadyStopped
	}
	s.queue.Clear()
	s.state = StateIdle
	p.resetVotesLocked(s)
	s.sink.Stop()
	return nil
}

// Leave clears the queue and tears the voice connection down.
func (p *Player) Leave(guildID string) error {
	s := p.session(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sink == nil {
		return ErrAlreadyStopped
	}
	p.teardownLocked(s)
	return nil
}

// teardownLocked resets the session to its initial state. Repeat and shuffle
// settings survive; everything else goes.
func (p *Player) teardownLocked(s *session) {
	s.queue.Clear()
	s.state = StateIdle
	s.idleSince = time.Time{}
	p.resetVotesLocked(s)
	if s.sink != nil {
		_ = s.sink.Close()
		s.sink = nil
	}
}

func (p *Player) Pause(guildID string) error {
	s := p.session(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return ErrNotPlaying
	}
	s.sink.Pause()
	s.state = StatePaused
	return nil
}

func (p *Player) Resume(guildID string) error {
	s := p.session(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePaused {
		return ErrNotPlaying
	}
	s.sink.Resume()
	s.state = StatePlaying
	return nil
}

func (p *Player) SetRepeat(guildID string, mode domain.RepeatMode) {
	s := p.session(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Repeat = mode
}

// CycleRepeat advances off -> one -> all -> off and returns the new mode.
func (p *Player) CycleRepeat(guildID string) domain.RepeatMode {
	s := p.session(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.queue.Repeat {
	case domain.RepeatOff:
		s.queue.Repeat = domain.RepeatOne
	case domain.RepeatOne:
		s.queue.Repeat = domain.RepeatAll
	default:
		s.queue.Repeat = domain.RepeatOff
	}
	return s.queue.Repeat
}

// ToggleShuffle flips shuffle and returns the new value.
func (p *Player) ToggleShuffle(guildID string) bool {
	s := p.session(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Shuffle = !s.queue.Shuffle
	return s.queue.Shuffle
}

// SetVolume stores the volume (0-100); it applies from the next track.
func (p *Player) SetVolume(guildID string, volume int) error {
	if volume < 0 || volume > 100 {
		return ErrBadVolume
	}
	s := p.session(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = volume
	return nil
}

// Snapshot is a consistent read of one session for display purposes.
type Snapshot struct {
	State    State
	Current  *domain.Track
	Position time.Duration
	Pending  []*domain.Track
	History  []*domain.Track
	Repeat   domain.RepeatMode
	Shuffle  bool
}

func (p *Player) Snapshot(guildID string) Snapshot {
	s := p.session(guildID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:    s.state,
		Current:  s.queue.Current(),
		Position: s.queue.Position(),
		Pending:  s.queue.Pending(),
		History:  s.queue.History(),
		Repeat:   s.queue.Repeat,
		Shuffle:  s.queue.Shuffle,
	}
}

func (p *Player) notifyNowPlaying(s *session, t *domain.Track) {
	if p.notifier == nil || s.queue.NotifyChannelID == "" {
		return
	}
	go p.notifier.NowPlaying(s.queue.NotifyChannelID, t)
}

func (p *Player) notifyInfo(s *session, title, msg string) {
	if p.notifier == nil || s.queue.NotifyChannelID == "" {
		return
	}
	go p.notifier.Info(s.queue.NotifyChannelID, title, msg)
}

func (p *Player) recordPlay(s *session, t *domain.Track) {
	if p.recorder == nil {
		return
	}
	guildID := s.guildID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.recorder.RecordPlay(ctx, guildID, t.RequesterID, t.Title, t.WebpageURL); err != nil {
			p.log.Warn().Str("guild_id", guildID).Err(err).Msg("record play failed")
		}
	}()
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
