package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// Cache stores fetched documents on disk, one file per URL.
type Cache struct {
	dir string
}

// NewCache returns a Cache rooted at dir, creating it if needed.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		return nil, fmt.Errorf("empty cache directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the file a URL is cached in.
// The name is the first 16 bytes of the URL's SHA-256 as hex, plus ".svg".
func (c *Cache) Path(url string) string {
	hash := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, fmt.Sprintf("%x.svg", hash[:16]))
}

// Get returns the cached document for url.
func (c *Cache) Get(url string) (string, bool) {
	data, err := os.ReadFile(c.Path(url))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Put stores a document for url, replacing any previous entry.
func (c *Cache) Put(url, text string) error {
	path := c.Path(url)
	tmp, err := os.CreateTemp(c.dir, ".fetch-*")
	if err != nil {
		return fmt.Errorf("failed to write cached document: %w", err)
	}
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cached document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cached document: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cached document: %w", err)
	}
	return nil
}
