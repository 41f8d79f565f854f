package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/harukit/melodybot/internal/games"
	"github.com/harukit/melodybot/internal/infra/storage"
	"github.com/harukit/melodybot/internal/music"
)

type Router struct {
	s            *discordgo.Session
	guildID      string
	adminRoleIDs []string

	player   *music.Player
	games    *games.Manager
	resolver music.Resolver

	settings  *storage.SettingsRepo
	tracks    *storage.TracksRepo
	favorites *storage.FavoritesRepo
	playlists *storage.PlaylistsRepo
	history   *storage.HistoryRepo

	playLimiter *playThrottle
	log         zerolog.Logger
}

type RouterDeps struct {
	Player    *music.Player
	Games     *games.Manager
	Resolver  music.Resolver
	Settings  *storage.SettingsRepo
	Tracks    *storage.TracksRepo
	Favorites *storage.FavoritesRepo
	Playlists *storage.PlaylistsRepo
	History   *storage.HistoryRepo
}

func NewRouter(s *discordgo.Session, guildID string, adminRoleIDs []string, deps RouterDeps, log zerolog.Logger) *Router {
	return &Router{
		s:            s,
		guildID:      guildID,
		adminRoleIDs: adminRoleIDs,
		player:       deps.Player,
		games:        deps.Games,
		resolver:     deps.Resolver,
		settings:     deps.Settings,
		tracks:       deps.Tracks,
		favorites:    deps.Favorites,
		playlists:    deps.Playlists,
		history:      deps.History,
		playLimiter:  newPlayThrottle(2 * time.Second),
		log:          log.With().Str("component", "router").Logger(),
	}
}

func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		r.handleSlashCommand(s, ic)
	})
}
