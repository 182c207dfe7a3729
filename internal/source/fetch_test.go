package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jmylchreest/svgtint/internal/security"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`

func newTestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		switch r.URL.Path {
		case "/shape.svg":
			if ua := r.Header.Get("User-Agent"); ua != "svgtint/test" {
				http.Error(w, "unexpected user agent "+ua, http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "image/svg+xml")
			_, _ = w.Write([]byte(testSVG))
		case "/large.svg":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchHTTP(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(Options{UserAgent: "svgtint/test", AllowPrivateHosts: true})

	text, err := c.Fetch(context.Background(), srv.URL+"/shape.svg")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if text != testSVG {
		t.Errorf("Fetch() = %q, want %q", text, testSVG)
	}
}

func TestFetchHTTPStatus(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(Options{UserAgent: "svgtint/test", AllowPrivateHosts: true})

	_, err := c.Fetch(context.Background(), srv.URL+"/missing.svg")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, http.StatusNotFound)
	}
	if !strings.Contains(fetchErr.Error(), "404") {
		t.Errorf("Error() = %q, want status code", fetchErr.Error())
	}
}

func TestFetchBlocksPrivateHosts(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c := New(Options{UserAgent: "svgtint/test"})

	_, err := c.Fetch(context.Background(), srv.URL+"/shape.svg")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	if hits.Load() != 0 {
		t.Error("request reached the server despite validation failure")
	}
}

func TestFetchSizeLimit(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(Options{AllowPrivateHosts: true, MaxBytes: 16})

	_, err := c.Fetch(context.Background(), srv.URL+"/large.svg")
	if !errors.Is(err, security.ErrSizeLimit) {
		t.Errorf("Fetch() error = %v, want ErrSizeLimit", err)
	}
}

func TestFetchCancelled(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(Options{UserAgent: "svgtint/test", AllowPrivateHosts: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, srv.URL+"/shape.svg")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestFetchUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)

	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	c := New(Options{UserAgent: "svgtint/test", AllowPrivateHosts: true, Cache: cache})

	for range 3 {
		text, err := c.Fetch(context.Background(), srv.URL+"/shape.svg")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if text != testSVG {
			t.Errorf("Fetch() = %q", text)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
	if _, err := os.Stat(cache.Path(srv.URL + "/shape.svg")); err != nil {
		t.Errorf("cached file missing: %v", err)
	}
}

func TestFetchLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shape.svg")
	if err := os.WriteFile(path, []byte(testSVG), 0o600); err != nil {
		t.Fatal(err)
	}

	c := New(Options{})
	for _, location := range []string{path, "file://" + path} {
		t.Run(location, func(t *testing.T) {
			text, err := c.Fetch(context.Background(), location)
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if text != testSVG {
				t.Errorf("Fetch() = %q", text)
			}
		})
	}

	_, err := c.Fetch(context.Background(), filepath.Join(dir, "missing.svg"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Fetch() error = %v, want os.ErrNotExist", err)
	}
}

func TestFetchUnsupportedScheme(t *testing.T) {
	c := New(Options{})
	_, err := c.Fetch(context.Background(), "ftp://example.com/shape.svg")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("Fetch() error = %v, want *FetchError", err)
	}
}

func TestCachePath(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a := cache.Path("https://example.com/a.svg")
	b := cache.Path("https://example.com/b.svg")
	if a == b {
		t.Error("distinct URLs must map to distinct cache files")
	}
	if a != cache.Path("https://example.com/a.svg") {
		t.Error("cache path must be deterministic")
	}
	if filepath.Ext(a) != ".svg" || len(filepath.Base(a)) != 36 {
		t.Errorf("unexpected cache file name %q", filepath.Base(a))
	}
}
