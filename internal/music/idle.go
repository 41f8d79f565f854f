package music

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SweepIdle is one polling pass over every session. A playing session has its
// idle timer dropped; a connected-but-silent session gets one started; a
// session idle for at least threshold is cleared and disconnected. Returns
// the guild IDs that were torn down.
func (p *Player) SweepIdle(now time.Time, threshold time.Duration) []string {
	p.mu.Lock()
	sessions := make([]*session, 0, len(p.sessions))
	for _, s := range p.sessions {
		sessions = append(sessions, s)
	}
	p.mu.Unlock()

	var expired []string
	for _, s := range sessions {
		s.mu.Lock()
		switch {
		case s.sink == nil:
			s.idleSince = time.Time{}
		case s.state == StatePlaying:
			s.idleSince = time.Time{}
		case s.idleSince.IsZero():
			s.idleSince = now
		case now.Sub(s.idleSince) >= threshold:
			notify := s.queue.NotifyChannelID
			p.teardownLocked(s)
			expired = append(expired, s.guildID)
			if p.notifier != nil && notify != "" {
				go p.notifier.Info(notify, "Disconnected", "Left the voice channel after 30 minutes of inactivity.")
			}
		}
		s.mu.Unlock()
	}
	return expired
}

// IdleMonitor disconnects sessions that sit silent past a threshold. Pure
// polling: worst-case detection latency is one tick beyond the threshold.
type IdleMonitor struct {
	player    *Player
	interval  time.Duration
	threshold time.Duration
	log       zerolog.Logger
}

func NewIdleMonitor(player *Player, interval, threshold time.Duration, log zerolog.Logger) *IdleMonitor {
	return &IdleMonitor{
		player:    player,
		interval:  interval,
		threshold: threshold,
		log:       log.With().Str("component", "idle_monitor").Logger(),
	}
}

// Run sweeps until ctx is cancelled. Meant to be launched as a goroutine
// from main.
func (m *IdleMonitor) Run(ctx context.Context) {
	t := time.NewTicker(m.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			for _, guildID := range m.player.SweepIdle(now, m.threshold) {
				m.log.Info().Str("guild_id", guildID).Msg("idle session disconnected")
			}
		}
	}
}
