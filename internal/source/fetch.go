// Package source retrieves raw SVG documents from URLs and local files.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/svgtint/internal/security"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes caps the size of a fetched document.
	DefaultMaxBytes = 10 << 20
)

// Fetcher returns the raw text of the document at location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// FetchError reports a failed fetch. StatusCode is set for non-OK HTTP responses.
type FetchError struct {
	Location   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d %s", e.Location, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %v", e.Location, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options configures a Client.
type Options struct {
	// Timeout specifies the HTTP request timeout. If zero, DefaultTimeout is used.
	Timeout time.Duration

	// MaxBytes caps the document size. If zero, DefaultMaxBytes is used.
	MaxBytes int64

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// Headers specifies additional HTTP headers to send with the request.
	Headers map[string]string

	// AllowPrivateHosts permits URLs that resolve to localhost or private networks.
	AllowPrivateHosts bool

	// Cache, when set, is consulted before and filled after every HTTP fetch.
	Cache *Cache

	// HTTPClient overrides the client used for requests.
	HTTPClient *http.Client

	Logger hclog.Logger
}

// Client fetches documents over HTTP(S), from file:// URLs and from local paths.
type Client struct {
	opts   Options
	client *http.Client
	logger hclog.Logger
}

// New creates a Client.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "svgtint"
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{opts: opts, client: client, logger: logger.Named("fetch")}
}

// Fetch returns the document at location. Locations without an http, https or file
// scheme are read as local paths.
func (c *Client) Fetch(ctx context.Context, location string) (string, error) {
	if location == "" {
		return "", &FetchError{Location: location, Err: errors.New("empty location")}
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Bare paths, including Windows drive letters.
		return c.readFile(location)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return c.fetchHTTP(ctx, location)
	case "file":
		return c.readFile(u.Path)
	default:
		return "", &FetchError{Location: location, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
}

func (c *Client) fetchHTTP(ctx context.Context, location string) (string, error) {
	if err := security.ValidateFetchURL(location, c.opts.AllowPrivateHosts); err != nil {
		return "", &FetchError{Location: location, Err: err}
	}

	if c.opts.Cache != nil {
		if text, ok := c.opts.Cache.Get(location); ok {
			c.logger.Debug("cache hit", "url", location)
			return text, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", &FetchError{Location: location, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "image/svg+xml, application/xml;q=0.9, */*;q=0.5")
	for key, value := range c.opts.Headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", &FetchError{Location: location, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{Location: location, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(security.NewLimitedReader(resp.Body, c.opts.MaxBytes))
	if err != nil {
		return "", &FetchError{Location: location, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug("fetched document", "url", location, "bytes", len(data), "elapsed", time.Since(start))

	text := string(data)
	if c.opts.Cache != nil {
		if err := c.opts.Cache.Put(location, text); err != nil {
			c.logger.Warn("failed to cache document", "url", location, "error", err)
		}
	}
	return text, nil
}

func (c *Client) readFile(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", &FetchError{Location: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(security.NewLimitedReader(f, c.opts.MaxBytes))
	if err != nil {
		return "", &FetchError{Location: path, Err: err}
	}
	c.logger.Debug("read document", "path", path, "bytes", len(data))
	return string(data), nil
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, location string) (string, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, location string) (string, error) {
	return f(ctx, location)
}
