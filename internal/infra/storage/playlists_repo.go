package storage

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type PlaylistsRepo struct{ db *sql.DB }

func NewPlaylistsRepo(db *sql.DB) *PlaylistsRepo { return &PlaylistsRepo{db: db} }

func (r *PlaylistsRepo) Create(ctx context.Context, userID, name string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO playlists (user_id, name)
VALUES ($1, $2)
ON CONFLICT (user_id, name) DO NOTHING
`, userID, name)
	return err
}

func (r *PlaylistsRepo) AddTrack(ctx context.Context, userID, name, url string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE playlists
   SET track_urls = array_append(track_urls, $3)
 WHERE user_id = $1 AND name = $2
`, userID, name, url)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PlaylistsRepo) Get(ctx context.Context, userID, name string) (Playlist, error) {
	var p Playlist
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, name, track_urls, created_at
  FROM playlists
 WHERE user_id = $1 AND name = $2
`, userID, name).Scan(&p.UserID, &p.Name, pq.Array(&p.TrackURLs), &p.CreatedAt)
	if err == sql.ErrNoRows {
		return Playlist{}, ErrNotFound
	}
	return p, err
}

func (r *PlaylistsRepo) List(ctx context.Context, userID string) ([]Playlist, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, name, track_urls, created_at
  FROM playlists
 WHERE user_id = $1
 ORDER BY created_at
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Playlist
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.UserID, &p.Name, pq.Array(&p.TrackURLs), &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlaylistsRepo) Delete(ctx context.Context, userID, name string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM playlists WHERE user_id = $1 AND name = $2
`, userID, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
