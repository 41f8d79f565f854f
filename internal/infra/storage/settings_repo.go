package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type SettingsRepo struct{ db *sql.DB }

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Get(ctx context.Context, guildID string) (GuildSettings, error) {
	var s GuildSettings
	err := r.db.QueryRowContext(ctx, `
SELECT guild_id, default_volume, notify_channel_id, music_enabled, games_enabled, created_at, updated_at
  FROM guild_settings
 WHERE guild_id = $1
`, guildID).Scan(
		&s.GuildID, &s.DefaultVolume, &s.NotifyChannelID, &s.MusicEnabled, &s.GamesEnabled, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		// first touch creates the defaults
		_, err := r.db.ExecContext(ctx, `
INSERT INTO guild_settings (guild_id) VALUES ($1)
`, guildID)
		if err != nil {
			return GuildSettings{}, err
		}
		return r.Get(ctx, guildID)
	}
	return s, err
}

func (r *SettingsRepo) Update(ctx context.Context, guildID string, u GuildSettingsUpdate) (GuildSettings, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	i := 1

	if u.DefaultVolume != nil {
		sets = append(sets, fmt.Sprintf("default_volume = $%d", i))
		args = append(args, *u.DefaultVolume)
		i++
	}
	if u.NotifyChannelID != nil {
		sets = append(sets, fmt.Sprintf("notify_channel_id = $%d", i))
		args = append(args, *u.NotifyChannelID)
		i++
	}
	if u.MusicEnabled != nil {
		sets = append(sets, fmt.Sprintf("music_enabled = $%d", i))
		args = append(args, *u.MusicEnabled)
		i++
	}
	if u.GamesEnabled != nil {
		sets = append(sets, fmt.Sprintf("games_enabled = $%d", i))
		args = append(args, *u.GamesEnabled)
		i++
	}
	if len(sets) == 0 {
		return r.Get(ctx, guildID)
	}
	sets = append(sets, fmt.Sprintf("updated_at = $%d", i))
	args = append(args, time.Now())
	i++

	args = append(args, guildID)

	_, err := r.db.ExecContext(ctx, `
UPDATE guild_settings
   SET `+strings.Join(sets, ", ")+`
 WHERE guild_id = $`+fmt.Sprint(i), args...)
	if err != nil {
		return GuildSettings{}, err
	}
	return r.Get(ctx, guildID)
}
