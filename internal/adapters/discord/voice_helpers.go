package discord

// userVoiceChannel finds which voice channel the user currently sits in.
func (r *Router) userVoiceChannel(guildID, userID string) (string, bool) {
	vs, err := r.s.State.VoiceState(guildID, userID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		return "", false
	}
	return vs.ChannelID, true
}

// voiceOccupants counts non-bot members in a voice channel. The skip quorum
// is computed from this on every vote, never cached.
func (r *Router) voiceOccupants(guildID, channelID string) int {
	g, err := r.s.State.Guild(guildID)
	if err != nil || g == nil {
		return 1
	}
	n := 0
	for _, vs := range g.VoiceStates {
		if vs.ChannelID != channelID {
			continue
		}
		if m, err := r.s.State.Member(guildID, vs.UserID); err == nil && m != nil && m.User != nil && m.User.Bot {
			continue
		}
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}
