package config

import (
	"log"
	"os"
	"strings"
)

type Config struct {
	DatabaseURL    string
	DiscordToken   string
	DiscordGuild   string
	ResolverAPIKey string
	ResolverBase   string // optional, client has its own default
	RedisAddr      string // optional, metadata cache disabled when empty

	AdminRoleIDs []string // roles allowed to change guild settings
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("missing env %s", k)
		}
		return v
	}

	cfg := Config{
		DatabaseURL:    get("DATABASE_URL", true),
		DiscordToken:   get("DISCORD_BOT_TOKEN", true),
		DiscordGuild:   get("DISCORD_GUILD_ID", true),
		ResolverAPIKey: get("RESOLVER_API_KEY", false),
		ResolverBase:   get("RESOLVER_BASE_URL", false),
		RedisAddr:      get("REDIS_ADDR", false),
	}
	if raw := get("ADMIN_ROLE_IDS", false); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.AdminRoleIDs = append(cfg.AdminRoleIDs, id)
			}
		}
	}
	return cfg
}
