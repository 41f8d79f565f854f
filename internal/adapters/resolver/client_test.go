package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harukit/melodybot/internal/domain"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("", WithBaseURL(srv.URL))
}

func entries(titles ...string) map[string]any {
	var es []map[string]any
	for _, title := range titles {
		es = append(es, map[string]any{
			"title":       title,
			"webpage_url": "https://example.com/watch?v=" + title,
			"duration":    180,
		})
	}
	return map[string]any{"entries": es}
}

func TestResolveSingleURL(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resolve" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("url"); got != "https://example.com/a" {
			t.Errorf("url param = %s", got)
		}
		json.NewEncoder(w).Encode(entries("A"))
	})

	ts, err := c.Resolve(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 1 || ts[0].Title != "A" || ts[0].Duration != 180*time.Second {
		t.Fatalf("tracks = %+v", ts)
	}
	if ts[0].StreamURL != "" {
		t.Fatal("resolve must not fetch stream locators eagerly")
	}
}

func TestResolvePlaylistCappedAt25(t *testing.T) {
	titles := make([]string, 40)
	for i := range titles {
		titles[i] = string(rune('a' + i%26))
	}
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(entries(titles...))
	})

	ts, err := c.Resolve(context.Background(), "https://example.com/playlist")
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != PlaylistCap {
		t.Fatalf("got %d tracks, want %d", len(ts), PlaylistCap)
	}
}

func TestResolveInvalidInput(t *testing.T) {
	c := New("")
	for _, in := range []string{"", "not a url", "ftp://example.com/x", "https://"} {
		if _, err := c.Resolve(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Resolve(%q) = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if _, err := c.Resolve(context.Background(), "https://example.com/gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	empty := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"entries": []any{}})
	})
	if _, err := empty.Resolve(context.Background(), "https://example.com/none"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty result: got %v, want ErrNotFound", err)
	}
}

func TestTimeoutIsDistinctFromNotFound(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(entries("A"))
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Resolve(ctx, "https://example.com/slow")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, want ErrTimeout", err)
	}
}

func TestSearchLimits(t *testing.T) {
	var gotLimit string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		json.NewEncoder(w).Encode(entries("A", "B", "C"))
	})

	ts, err := c.Search(context.Background(), "some song", 2)
	if err != nil {
		t.Fatal(err)
	}
	if gotLimit != "2" {
		t.Fatalf("limit param = %s, want 2", gotLimit)
	}
	// an over-replying server is still truncated client-side
	if len(ts) != 2 {
		t.Fatalf("got %d results, want 2", len(ts))
	}

	if _, err := c.Search(context.Background(), "", 5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty query: got %v, want ErrInvalidInput", err)
	}
}

func TestStreamURL(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"stream_url": "https://cdn.example.com/a.m4a"})
	})
	tr := domain.NewTrack("A", "https://example.com/watch?v=A")
	got, err := c.StreamURL(context.Background(), tr)
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://cdn.example.com/a.m4a" {
		t.Fatalf("stream url = %s", got)
	}
}

func TestAPIErrorCarriesStatusAndBody(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream extractor crashed"))
	})
	_, err := c.Resolve(context.Background(), "https://example.com/a")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Body != "upstream extractor crashed" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}
