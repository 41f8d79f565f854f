package resolver

import "net/http"

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithCache enables the Redis metadata cache.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}
