package storage

import (
	"context"
	"database/sql"
)

type FavoritesRepo struct{ db *sql.DB }

func NewFavoritesRepo(db *sql.DB) *FavoritesRepo { return &FavoritesRepo{db: db} }

func (r *FavoritesRepo) Add(ctx context.Context, userID, url string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO favorites (user_id, url)
VALUES ($1, $2)
ON CONFLICT (user_id, url) DO NOTHING
`, userID, url)
	return err
}

func (r *FavoritesRepo) Remove(ctx context.Context, userID, url string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM favorites WHERE user_id = $1 AND url = $2
`, userID, url)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FavoritesRepo) List(ctx context.Context, userID string) ([]Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT f.user_id, f.added_at, t.url, t.title, t.duration_seconds, t.thumbnail
  FROM favorites f
  JOIN tracks t ON t.url = f.url
 WHERE f.user_id = $1
 ORDER BY f.added_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.UserID, &f.AddedAt, &f.Track.URL, &f.Track.Title, &f.Track.DurationSeconds, &f.Track.Thumbnail); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
