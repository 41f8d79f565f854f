package storage

import (
	"context"
	"database/sql"
	"time"
)

type HistoryRepo struct{ db *sql.DB }

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

func (r *HistoryRepo) RecordPlay(ctx context.Context, guildID, userID, title, url string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO play_history (guild_id, user_id, title, url)
VALUES ($1, $2, $3, $4)
`, guildID, userID, title, url)
	return err
}

func (r *HistoryRepo) TopTracks(ctx context.Context, guildID string, limit int) ([]TrackCount, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT title, url, COUNT(*) AS plays
  FROM play_history
 WHERE guild_id = $1
 GROUP BY title, url
 ORDER BY plays DESC
 LIMIT $2
`, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TrackCount
	for rows.Next() {
		var t TrackCount
		if err := rows.Scan(&t.Title, &t.URL, &t.Plays); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *HistoryRepo) CountPlays(ctx context.Context, guildID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM play_history WHERE guild_id = $1
`, guildID).Scan(&n)
	return n, err
}

// PruneOlderThan removes history rows older than the cutoff. Used by the janitor.
func (r *HistoryRepo) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM play_history WHERE played_at < $1
`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
