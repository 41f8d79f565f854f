package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	discordrouter "github.com/harukit/melodybot/internal/adapters/discord"
	"github.com/harukit/melodybot/internal/adapters/resolver"
	"github.com/harukit/melodybot/internal/adapters/voice"
	"github.com/harukit/melodybot/internal/games"
	"github.com/harukit/melodybot/internal/infra/config"
	"github.com/harukit/melodybot/internal/infra/storage"
	"github.com/harukit/melodybot/internal/music"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	idleCheckInterval = time.Minute
	idleThreshold     = 30 * time.Minute
	gameSweepInterval = 30 * time.Second
)

func main() {
	_ = godotenv.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.Load()

	// DB
	db, err := storage.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db open")
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	log.Info().Msg("db ready and migrated")

	// Repos
	settingsRepo := storage.NewSettingsRepo(db)
	tracksRepo := storage.NewTracksRepo(db)
	favoritesRepo := storage.NewFavoritesRepo(db)
	playlistsRepo := storage.NewPlaylistsRepo(db)
	historyRepo := storage.NewHistoryRepo(db)

	// Resolver client, with a Redis metadata cache when configured
	ropts := []resolver.Option{}
	if cfg.ResolverBase != "" {
		ropts = append(ropts, resolver.WithBaseURL(cfg.ResolverBase))
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ropts = append(ropts, resolver.WithCache(resolver.NewCache(rdb, log)))
	}
	rc := resolver.New(cfg.ResolverAPIKey, ropts...)

	// Discord session
	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal().Err(err).Msg("discord session")
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates | discordgo.IntentsGuildMembers
	if err := s.Open(); err != nil {
		log.Fatal().Err(err).Msg("discord open")
	}
	defer s.Close()
	log.Info().Str("user", s.State.User.Username).Str("id", s.State.User.ID).Msg("connected")

	// Playback
	opener := voice.NewOpener(s, log)
	notifier := discordrouter.NewChannelNotifier(s, log)
	player := music.NewPlayer(rc, opener, notifier, historyRepo, log)
	gamesMgr := games.NewManager()

	// Router
	r := discordrouter.NewRouter(s, cfg.DiscordGuild, cfg.AdminRoleIDs, discordrouter.RouterDeps{
		Player:    player,
		Games:     gamesMgr,
		Resolver:  rc,
		Settings:  settingsRepo,
		Tracks:    tracksRepo,
		Favorites: favoritesRepo,
		Playlists: playlistsRepo,
		History:   historyRepo,
	}, log)
	if err := r.Register(); err != nil {
		log.Fatal().Err(err).Msg("registering commands")
	}
	r.Handlers()
	log.Info().Str("guild_id", cfg.DiscordGuild).Msg("commands registered")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Idle sessions get disconnected after half an hour of silence
	monitor := music.NewIdleMonitor(player, idleCheckInterval, idleThreshold, log)
	go monitor.Run(ctx)

	// Stale board games forfeit to the waiting player
	go func() {
		t := time.NewTicker(gameSweepInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				r.SweepExpiredGames(now)
			}
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
	log.Info().Msg("shutting down")
}
