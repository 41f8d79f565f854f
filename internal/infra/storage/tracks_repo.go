package storage

import (
	"context"
	"database/sql"
)

type TracksRepo struct{ db *sql.DB }

func NewTracksRepo(db *sql.DB) *TracksRepo { return &TracksRepo{db: db} }

func (r *TracksRepo) Upsert(ctx context.Context, t TrackRow) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO tracks (url, title, duration_seconds, thumbnail)
VALUES ($1, $2, $3, $4)
ON CONFLICT (url) DO UPDATE SET
  title            = EXCLUDED.title,
  duration_seconds = EXCLUDED.duration_seconds,
  thumbnail        = EXCLUDED.thumbnail
`, t.URL, t.Title, t.DurationSeconds, t.Thumbnail)
	return err
}

func (r *TracksRepo) GetByURL(ctx context.Context, url string) (TrackRow, error) {
	var t TrackRow
	err := r.db.QueryRowContext(ctx, `
SELECT url, title, duration_seconds, thumbnail
  FROM tracks
 WHERE url = $1
`, url).Scan(&t.URL, &t.Title, &t.DurationSeconds, &t.Thumbnail)
	if err == sql.ErrNoRows {
		return TrackRow{}, ErrNotFound
	}
	return t, err
}
