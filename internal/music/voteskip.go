package music

// SkipDecision is the outcome of one vote. Duplicate votes are a reported
// no-op, not an error: the caller tells the voter, the tally stays put.
type SkipDecision struct {
	Skipped   bool
	Duplicate bool
	Votes     int
	Required  int
}

// Quorum is the minimum distinct-voter count required to force a skip:
// floor(occupants/2)+1, where occupants counts non-bot members in the voice
// channel. With a single occupant one vote skips immediately.
func Quorum(occupants int) int {
	if occupants < 1 {
		occupants = 1
	}
	return occupants/2 + 1
}

// VoteSkip registers one ballot against the current track. The quorum is
// recomputed from live occupancy on every call, never cached; occupancy is
// supplied by the command boundary, which can see the voice channel.
func (p *Player) VoteSkip(guildID, voterID string, occupants int) (SkipDecision, error) {
	s := p.session(guildID)
	s.mu.Lock()

	if s.state != StatePlaying && s.state != StatePaused {
		s.mu.Unlock()
		return SkipDecision{}, ErrNotPlaying
	}

	required := Quorum(occupants)
	if _, dup := s.votes[voterID]; dup {
		d := SkipDecision{Duplicate: true, Votes: len(s.votes), Required: required}
		s.mu.Unlock()
		return d, nil
	}
	s.votes[voterID] = struct{}{}
	votes := len(s.votes)

	if votes >= required {
		p.resetVotesLocked(s)
		s.state = StateTransitioning
		s.sink.Stop()
		s.mu.Unlock()
		return SkipDecision{Skipped: true, Votes: votes, Required: required}, nil
	}

	s.mu.Unlock()
	return SkipDecision{Votes: votes, Required: required}, nil
}

// resetVotesLocked clears the ballot; called on every track transition so
// votes never carry over. Caller holds s.mu.
func (p *Player) resetVotesLocked(s *session) {
	s.votes = make(map[string]struct{})
}
