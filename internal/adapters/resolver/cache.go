package resolver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/harukit/melodybot/internal/domain"
)

// metadataTTL keeps resolved metadata short-lived; upstream titles and
// durations rarely change but stream availability does.
const metadataTTL = 120 * time.Second

// Cache holds resolved track metadata in Redis keyed by the canonical URL.
// Cache misses and Redis failures both fall through to a live resolve, so a
// dead Redis only costs latency.
type Cache struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewCache(rdb *redis.Client, log zerolog.Logger) *Cache {
	return &Cache{rdb: rdb, log: log.With().Str("component", "resolver_cache").Logger()}
}

func cacheKey(rawURL string) string { return "resolver:meta:" + rawURL }

type cachedTrack struct {
	Title      string `json:"title"`
	WebpageURL string `json:"webpage_url"`
	Duration   int    `json:"duration"`
	Thumbnail  string `json:"thumbnail"`
}

func (c *Cache) Get(ctx context.Context, rawURL string) ([]*domain.Track, bool) {
	val, err := c.rdb.Get(ctx, cacheKey(rawURL)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("cache get failed")
		return nil, false
	}

	var items []cachedTrack
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		c.log.Warn().Err(err).Msg("cache entry corrupt, dropping")
		c.rdb.Del(ctx, cacheKey(rawURL))
		return nil, false
	}

	tracks := make([]*domain.Track, 0, len(items))
	for _, it := range items {
		t := domain.NewTrack(it.Title, it.WebpageURL)
		t.Duration = time.Duration(it.Duration) * time.Second
		t.Thumbnail = it.Thumbnail
		tracks = append(tracks, t)
	}
	return tracks, true
}

func (c *Cache) Put(ctx context.Context, rawURL string, tracks []*domain.Track) {
	items := make([]cachedTrack, 0, len(tracks))
	for _, t := range tracks {
		items = append(items, cachedTrack{
			Title:      t.Title,
			WebpageURL: t.WebpageURL,
			Duration:   int(t.Duration / time.Second),
			Thumbnail:  t.Thumbnail,
		})
	}
	b, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(rawURL), b, metadataTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache put failed")
	}
}
