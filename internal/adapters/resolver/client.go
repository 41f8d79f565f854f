package resolver

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/harukit/melodybot/internal/domain"
)

const (
	// PlaylistCap bounds how many playlist items one resolve may return;
	// anything beyond it is silently dropped and the caller only learns the
	// count actually added.
	PlaylistCap = 25

	// MaxSearchResults caps free-text search candidates.
	MaxSearchResults = 20

	playlistTimeout = 120 * time.Second
	lookupTimeout   = 15 * time.Second
)

// Resolve turns a URL (single video or playlist) into track descriptors.
// Stream locators are not fetched here; they are resolved lazily per track
// right before playback.
func (c *Client) Resolve(ctx context.Context, rawURL string) ([]*domain.Track, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidInput
	}

	if c.cache != nil {
		if ts, ok := c.cache.Get(ctx, rawURL); ok {
			return ts, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, playlistTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("url", rawURL)
	q.Set("limit", strconv.Itoa(PlaylistCap))

	var dto resolveDTO
	if err := c.doJSON(ctx, "GET", "/resolve", q, &dto); err != nil {
		return nil, err
	}
	if len(dto.Entries) == 0 {
		return nil, ErrNotFound
	}
	if len(dto.Entries) > PlaylistCap {
		dto.Entries = dto.Entries[:PlaylistCap]
	}

	tracks := make([]*domain.Track, 0, len(dto.Entries))
	for _, e := range dto.Entries {
		tracks = append(tracks, e.track())
	}
	if c.cache != nil {
		c.cache.Put(ctx, rawURL, tracks)
	}
	return tracks, nil
}

// Search returns up to limit candidates for a free-text query, without
// stream locators.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]*domain.Track, error) {
	if query == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > MaxSearchResults {
		limit = MaxSearchResults
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	var dto resolveDTO
	if err := c.doJSON(ctx, "GET", "/search", q, &dto); err != nil {
		return nil, err
	}
	if len(dto.Entries) == 0 {
		return nil, ErrNotFound
	}
	if len(dto.Entries) > limit {
		dto.Entries = dto.Entries[:limit]
	}

	tracks := make([]*domain.Track, 0, len(dto.Entries))
	for _, e := range dto.Entries {
		tracks = append(tracks, e.track())
	}
	return tracks, nil
}

// StreamURL fetches the stream locator for one track. Locators expire
// upstream, so this runs right before the track starts playing.
func (c *Client) StreamURL(ctx context.Context, t *domain.Track) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("url", t.WebpageURL)

	var dto streamDTO
	if err := c.doJSON(ctx, "GET", "/stream", q, &dto); err != nil {
		return "", err
	}
	if dto.StreamURL == "" {
		return "", ErrNotFound
	}
	return dto.StreamURL, nil
}
