package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/harukit/melodybot/internal/adapters/resolver"
	"github.com/harukit/melodybot/internal/domain"
	"github.com/harukit/melodybot/internal/infra/storage"
	"github.com/harukit/melodybot/internal/music"
)

// resolveTimeout bounds a /play resolution; playlists can take a while.
const resolveTimeout = 2 * time.Minute

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	cmd := ic.ApplicationCommandData()
	r.log.Info().
		Str("cmd", cmd.Name).
		Str("user_id", ic.Member.User.ID).
		Str("guild_id", ic.GuildID).
		Msg("slash command")

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Str("cmd", cmd.Name).Interface("panic", rec).Msg("panic in slash command")
			ReplyEphemeral(s, ic, "⚠️ Something went wrong handling that command.")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	switch cmd.Name {
	case "play":
		_ = DeferPublic(s, ic)
		r.handlePlay(ctx, s, ic)
	case "search":
		_ = DeferEphemeral(s, ic)
		r.handleSearch(s, ic)
	case "skip":
		_ = DeferPublic(s, ic)
		r.handleSkip(s, ic)
	case "stop":
		_ = DeferEphemeral(s, ic)
		if err := r.player.Stop(ic.GuildID); err != nil {
			ReplyEphemeral(s, ic, "Nothing is playing.")
			return
		}
		ReplyEphemeral(s, ic, "⏹️ Stopped and cleared the queue.")
	case "pause":
		_ = DeferEphemeral(s, ic)
		if err := r.player.Pause(ic.GuildID); err != nil {
			ReplyEphemeral(s, ic, "Nothing is playing.")
			return
		}
		ReplyEphemeral(s, ic, "⏸️ Paused.")
	case "resume":
		_ = DeferEphemeral(s, ic)
		if err := r.player.Resume(ic.GuildID); err != nil {
			ReplyEphemeral(s, ic, "Nothing is paused.")
			return
		}
		ReplyEphemeral(s, ic, "▶️ Resumed.")
	case "leave":
		_ = DeferEphemeral(s, ic)
		if err := r.player.Leave(ic.GuildID); err != nil {
			ReplyEphemeral(s, ic, "I'm not in a voice channel.")
			return
		}
		ReplyEphemeral(s, ic, "👋 Left the voice channel.")
	case "queue":
		_ = DeferEphemeral(s, ic)
		r.handleQueue(s, ic)
	case "nowplaying":
		_ = DeferEphemeral(s, ic)
		r.handleNowPlaying(s, ic)
	case "repeat":
		_ = DeferEphemeral(s, ic)
		mode := r.player.CycleRepeat(ic.GuildID)
		ReplyEphemeral(s, ic, "🔁 Repeat: **"+mode.String()+"**")
	case "shuffle":
		_ = DeferEphemeral(s, ic)
		if r.player.ToggleShuffle(ic.GuildID) {
			ReplyEphemeral(s, ic, "🔀 Shuffle **on**.")
		} else {
			ReplyEphemeral(s, ic, "➡️ Shuffle **off**.")
		}
	case "volume":
		_ = DeferEphemeral(s, ic)
		level, _ := optInt(ic, "level")
		if err := r.player.SetVolume(ic.GuildID, level); err != nil {
			ReplyEphemeral(s, ic, "Volume must be between 0 and 100.")
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("🔊 Volume set to %d. Applies from the next track.", level))
	case "favorite":
		_ = DeferEphemeral(s, ic)
		r.handleFavorite(ctx, s, ic)
	case "playlist":
		_ = DeferEphemeral(s, ic)
		r.handlePlaylist(ctx, s, ic)
	case "stats":
		_ = DeferEphemeral(s, ic)
		r.handleStats(ctx, s, ic)
	case "connect4", "othello", "tictactoe":
		_ = DeferPublic(s, ic)
		r.handleGameStart(ctx, s, ic, cmd.Name)
	case "drop", "place":
		_ = DeferPublic(s, ic)
		r.handleGameMove(s, ic, cmd.Name)
	case "resign":
		_ = DeferPublic(s, ic)
		r.handleResign(s, ic)
	case "settings":
		_ = DeferEphemeral(s, ic)
		r.handleSettings(ctx, s, ic)
	}
}

// musicAllowed gates music commands on the guild flag. Lookup failures fail
// open; a broken database should not mute the bot.
func (r *Router) musicAllowed(ctx context.Context, guildID string) bool {
	st, err := r.settings.Get(ctx, guildID)
	if err != nil {
		return true
	}
	return st.MusicEnabled
}

func (r *Router) handlePlay(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	userID := ic.Member.User.ID
	if !r.playLimiter.Allow(userID) {
		ReplyEphemeral(s, ic, "Easy there, try again in a moment.")
		return
	}
	if !r.musicAllowed(ctx, ic.GuildID) {
		ReplyEphemeral(s, ic, "Music is disabled on this server.")
		return
	}
	vcID, ok := r.userVoiceChannel(ic.GuildID, userID)
	if !ok {
		ReplyEphemeral(s, ic, "🎧 Join a voice channel first.")
		return
	}
	query, _ := optStr(ic, "query")

	st, err := r.settings.Get(ctx, ic.GuildID)
	notifyID := ic.ChannelID
	if err == nil && st.NotifyChannelID != "" {
		notifyID = st.NotifyChannelID
	}
	snap := r.player.Snapshot(ic.GuildID)
	if err == nil && snap.State == music.StateIdle && snap.Current == nil {
		_ = r.player.SetVolume(ic.GuildID, st.DefaultVolume)
	}

	playCtx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()
	res, err := r.player.Enqueue(playCtx, ic.GuildID, vcID, notifyID, userID, query)
	if err != nil {
		ReplyPublic(s, ic, playErrorMessage(err))
		return
	}

	go r.rememberTracks(res.Added)

	switch {
	case len(res.Added) > 1:
		ReplyPublic(s, ic, fmt.Sprintf("➕ Queued **%d** tracks.", len(res.Added)))
	case res.Started:
		ReplyPublic(s, ic, "▶️ "+trackLine(res.Added[0]))
	default:
		ReplyPublic(s, ic, "➕ Queued "+trackLine(res.Added[0]))
	}
}

func playErrorMessage(err error) string {
	switch {
	case errors.Is(err, resolver.ErrNotFound):
		return "🔍 I couldn't find anything for that."
	case errors.Is(err, resolver.ErrInvalidInput):
		return "That doesn't look like something I can play."
	case errors.Is(err, resolver.ErrTimeout):
		return "⏱️ The resolver took too long, try again."
	case errors.Is(err, music.ErrSinkUnavailable):
		return "I couldn't join your voice channel."
	default:
		return "⚠️ Couldn't play that: " + err.Error()
	}
}

// rememberTracks persists resolved metadata so favorites and playlists can
// reference tracks by URL later.
func (r *Router) rememberTracks(tracks []*domain.Track) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, t := range tracks {
		row := storage.TrackRow{
			URL:             t.WebpageURL,
			Title:           t.Title,
			DurationSeconds: int(t.Duration.Seconds()),
			Thumbnail:       t.Thumbnail,
		}
		if err := r.tracks.Upsert(ctx, row); err != nil {
			r.log.Warn().Str("url", t.WebpageURL).Err(err).Msg("track upsert failed")
			return
		}
	}
}

func (r *Router) handleSearch(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	query, _ := optStr(ic, "query")
	limit, ok := optInt(ic, "limit")
	if !ok {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	tracks, err := r.resolver.Search(ctx, query, limit)
	if err != nil {
		ReplyEphemeral(s, ic, playErrorMessage(err))
		return
	}
	ReplyEphemeral(s, ic, "", &discordgo.MessageEmbed{
		Title:       "Search results",
		Description: trackList(tracks, 20),
		Color:       0x5865f2,
	})
}

func (r *Router) handleSkip(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	userID := ic.Member.User.ID
	vcID, ok := r.userVoiceChannel(ic.GuildID, userID)
	if !ok {
		ReplyEphemeral(s, ic, "🎧 Join the voice channel to vote.")
		return
	}
	occupants := r.voiceOccupants(ic.GuildID, vcID)

	d, err := r.player.VoteSkip(ic.GuildID, userID, occupants)
	if err != nil {
		ReplyEphemeral(s, ic, "Nothing is playing.")
		return
	}
	switch {
	case d.Skipped:
		ReplyPublic(s, ic, "⏭️ Skipped.")
	case d.Duplicate:
		ReplyEphemeral(s, ic, fmt.Sprintf("You already voted. %d/%d votes.", d.Votes, d.Required))
	default:
		ReplyPublic(s, ic, fmt.Sprintf("🗳️ Skip vote registered: %d/%d.", d.Votes, d.Required))
	}
}

func (r *Router) handleQueue(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	snap := r.player.Snapshot(ic.GuildID)
	if snap.Current == nil && len(snap.Pending) == 0 {
		ReplyEphemeral(s, ic, "The queue is empty.")
		return
	}

	var b strings.Builder
	if snap.Current != nil {
		fmt.Fprintf(&b, "**Now playing** (%s)\n%s\n\n", snap.State, trackLine(snap.Current))
	}
	if len(snap.Pending) > 0 {
		b.WriteString("**Up next**\n")
		b.WriteString(trackList(snap.Pending, 15))
	}
	fmt.Fprintf(&b, "\nRepeat: `%s` · Shuffle: `%v`", snap.Repeat, snap.Shuffle)

	ReplyEphemeral(s, ic, "", &discordgo.MessageEmbed{
		Title:       "Queue",
		Description: b.String(),
		Color:       0x5865f2,
	})
}

func (r *Router) handleNowPlaying(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	snap := r.player.Snapshot(ic.GuildID)
	if snap.Current == nil {
		ReplyEphemeral(s, ic, "Nothing is playing.")
		return
	}
	desc := fmt.Sprintf("%s\n`%s / %s`",
		trackLine(snap.Current), fmtDuration(snap.Position), fmtDuration(snap.Current.Duration))
	ReplyEphemeral(s, ic, "", &discordgo.MessageEmbed{
		Title:       "Now playing",
		Description: desc,
		Color:       0x1db954,
	})
}

func (r *Router) handleFavorite(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	userID := ic.Member.User.ID
	sub, _ := subcmdName(ic)

	switch sub {
	case "add":
		snap := r.player.Snapshot(ic.GuildID)
		if snap.Current == nil {
			ReplyEphemeral(s, ic, "Nothing is playing to save.")
			return
		}
		t := snap.Current
		row := storage.TrackRow{
			URL:             t.WebpageURL,
			Title:           t.Title,
			DurationSeconds: int(t.Duration.Seconds()),
			Thumbnail:       t.Thumbnail,
		}
		if err := r.tracks.Upsert(ctx, row); err != nil {
			ReplyEphemeral(s, ic, "⚠️ Couldn't save that: "+err.Error())
			return
		}
		if err := r.favorites.Add(ctx, userID, t.WebpageURL); err != nil {
			ReplyEphemeral(s, ic, "⚠️ Couldn't save that: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, "⭐ Saved **"+t.Title+"** to your favorites.")

	case "list":
		favs, err := r.favorites.List(ctx, userID)
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ Couldn't load your favorites: "+err.Error())
			return
		}
		if len(favs) == 0 {
			ReplyEphemeral(s, ic, "You have no favorites yet. Use `/favorite add` while a track plays.")
			return
		}
		var b strings.Builder
		for i, f := range favs {
			fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, f.Track.Title, f.Track.URL)
		}
		ReplyEphemeral(s, ic, "", &discordgo.MessageEmbed{Title: "Your favorites", Description: b.String(), Color: 0xf1c40f})

	case "remove":
		url, _ := optStr(ic, "url")
		if err := r.favorites.Remove(ctx, userID, url); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				ReplyEphemeral(s, ic, "That URL isn't in your favorites.")
				return
			}
			ReplyEphemeral(s, ic, "⚠️ Couldn't remove that: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, "🗑️ Removed.")

	case "play":
		favs, err := r.favorites.List(ctx, userID)
		if err != nil || len(favs) == 0 {
			ReplyEphemeral(s, ic, "You have no favorites to play.")
			return
		}
		tracks := make([]*domain.Track, 0, len(favs))
		for _, f := range favs {
			t := domain.NewTrack(f.Track.Title, f.Track.URL)
			t.Duration = time.Duration(f.Track.DurationSeconds) * time.Second
			t.Thumbnail = f.Track.Thumbnail
			tracks = append(tracks, t)
		}
		r.enqueueSaved(ctx, s, ic, tracks)
	}
}

func (r *Router) handlePlaylist(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	userID := ic.Member.User.ID
	sub, _ := subcmdName(ic)
	name, _ := optStr(ic, "name")

	switch sub {
	case "create":
		if err := r.playlists.Create(ctx, userID, name); err != nil {
			ReplyEphemeral(s, ic, "⚠️ Couldn't create the playlist: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, "📃 Playlist **"+name+"** created.")

	case "add":
		snap := r.player.Snapshot(ic.GuildID)
		if snap.Current == nil {
			ReplyEphemeral(s, ic, "Nothing is playing to add.")
			return
		}
		t := snap.Current
		row := storage.TrackRow{
			URL:             t.WebpageURL,
			Title:           t.Title,
			DurationSeconds: int(t.Duration.Seconds()),
			Thumbnail:       t.Thumbnail,
		}
		if err := r.tracks.Upsert(ctx, row); err != nil {
			ReplyEphemeral(s, ic, "⚠️ Couldn't add that: "+err.Error())
			return
		}
		if err := r.playlists.AddTrack(ctx, userID, name, t.WebpageURL); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				ReplyEphemeral(s, ic, "No playlist named **"+name+"**. Create it with `/playlist create`.")
				return
			}
			ReplyEphemeral(s, ic, "⚠️ Couldn't add that: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, "➕ Added **"+t.Title+"** to **"+name+"**.")

	case "load":
		pl, err := r.playlists.Get(ctx, userID, name)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				ReplyEphemeral(s, ic, "No playlist named **"+name+"**.")
				return
			}
			ReplyEphemeral(s, ic, "⚠️ Couldn't load the playlist: "+err.Error())
			return
		}
		if len(pl.TrackURLs) == 0 {
			ReplyEphemeral(s, ic, "That playlist is empty.")
			return
		}
		tracks := make([]*domain.Track, 0, len(pl.TrackURLs))
		for _, url := range pl.TrackURLs {
			row, err := r.tracks.GetByURL(ctx, url)
			if err != nil {
				row = storage.TrackRow{URL: url, Title: url}
			}
			t := domain.NewTrack(row.Title, row.URL)
			t.Duration = time.Duration(row.DurationSeconds) * time.Second
			t.Thumbnail = row.Thumbnail
			tracks = append(tracks, t)
		}
		r.enqueueSaved(ctx, s, ic, tracks)

	case "list":
		pls, err := r.playlists.List(ctx, userID)
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ Couldn't list your playlists: "+err.Error())
			return
		}
		if len(pls) == 0 {
			ReplyEphemeral(s, ic, "You have no playlists yet.")
			return
		}
		var b strings.Builder
		for _, p := range pls {
			fmt.Fprintf(&b, "• **%s** (%d tracks)\n", p.Name, len(p.TrackURLs))
		}
		ReplyEphemeral(s, ic, "", &discordgo.MessageEmbed{Title: "Your playlists", Description: b.String(), Color: 0xf1c40f})

	case "delete":
		if err := r.playlists.Delete(ctx, userID, name); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				ReplyEphemeral(s, ic, "No playlist named **"+name+"**.")
				return
			}
			ReplyEphemeral(s, ic, "⚠️ Couldn't delete the playlist: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, "🗑️ Playlist **"+name+"** deleted.")
	}
}

// enqueueSaved queues pre-resolved tracks from favorites or a playlist.
func (r *Router) enqueueSaved(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, tracks []*domain.Track) {
	userID := ic.Member.User.ID
	if !r.musicAllowed(ctx, ic.GuildID) {
		ReplyEphemeral(s, ic, "Music is disabled on this server.")
		return
	}
	vcID, ok := r.userVoiceChannel(ic.GuildID, userID)
	if !ok {
		ReplyEphemeral(s, ic, "🎧 Join a voice channel first.")
		return
	}
	res, err := r.player.EnqueueTracks(ctx, ic.GuildID, vcID, ic.ChannelID, userID, tracks)
	if err != nil {
		ReplyEphemeral(s, ic, playErrorMessage(err))
		return
	}
	ReplyEphemeral(s, ic, fmt.Sprintf("➕ Queued **%d** tracks.", len(res.Added)))
}

func (r *Router) handleStats(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	top, err := r.history.TopTracks(ctx, ic.GuildID, 10)
	if err != nil {
		ReplyEphemeral(s, ic, "⚠️ Couldn't load stats: "+err.Error())
		return
	}
	total, err := r.history.CountPlays(ctx, ic.GuildID)
	if err != nil {
		ReplyEphemeral(s, ic, "⚠️ Couldn't load stats: "+err.Error())
		return
	}
	if total == 0 {
		ReplyEphemeral(s, ic, "Nothing has been played here yet.")
		return
	}
	var b strings.Builder
	for i, t := range top {
		fmt.Fprintf(&b, "%d. [%s](%s) — %d plays\n", i+1, t.Title, t.URL, t.Plays)
	}
	fmt.Fprintf(&b, "\n%d plays total.", total)
	ReplyEphemeral(s, ic, "", &discordgo.MessageEmbed{Title: "Most played", Description: b.String(), Color: 0x1db954})
}

func (r *Router) handleSettings(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	sub, _ := subcmdName(ic)

	switch sub {
	case "show":
		st, err := r.settings.Get(ctx, ic.GuildID)
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ Couldn't load settings: "+err.Error())
			return
		}
		notify := "same channel as /play"
		if st.NotifyChannelID != "" {
			notify = "<#" + st.NotifyChannelID + ">"
		}
		msg := fmt.Sprintf(
			"Default volume: **%d**\nNow-playing channel: %s\nMusic: **%v**\nGames: **%v**",
			st.DefaultVolume, notify, st.MusicEnabled, st.GamesEnabled,
		)
		ReplyEphemeral(s, ic, msg)

	case "set":
		if !r.requireAdminOrRoles(s, ic) {
			return
		}
		var u storage.GuildSettingsUpdate
		if v, ok := optInt(ic, "default_volume"); ok {
			if v < 0 || v > 100 {
				ReplyEphemeral(s, ic, "default_volume must be between 0 and 100.")
				return
			}
			u.DefaultVolume = &v
		}
		if v, ok := optChannelID(ic, "notify_channel"); ok {
			u.NotifyChannelID = &v
		}
		if v, ok := optBool(ic, "music_enabled"); ok {
			u.MusicEnabled = &v
		}
		if v, ok := optBool(ic, "games_enabled"); ok {
			u.GamesEnabled = &v
		}
		if _, err := r.settings.Update(ctx, ic.GuildID, u); err != nil {
			ReplyEphemeral(s, ic, "⚠️ Couldn't update settings: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, "✅ Settings updated.")
	}
}
