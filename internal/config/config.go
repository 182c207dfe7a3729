// Package config holds the runtime settings shared by the svgtint commands.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/svgtint/internal/colour"
	"github.com/jmylchreest/svgtint/internal/version"
)

// Environment variables read by FromEnv.
const (
	EnvTimeout           = "SVGTINT_TIMEOUT"
	EnvCacheDir          = "SVGTINT_CACHE_DIR"
	EnvClassPattern      = "SVGTINT_CLASS_PATTERN"
	EnvFallbackFill      = "SVGTINT_FALLBACK_FILL"
	EnvNamedColours      = "SVGTINT_NAMED_COLOURS"
	EnvAllowPrivateHosts = "SVGTINT_ALLOW_PRIVATE_HOSTS"
)

const (
	// DefaultTimeout bounds a single document fetch.
	DefaultTimeout = 10 * time.Second

	// DefaultClassPattern matches the st0, st1, … classes written by Illustrator-style exporters.
	DefaultClassPattern = `^st[\w-]*$`

	// DefaultFallbackFill is given to paths that carry no fill of their own.
	DefaultFallbackFill = "#000000"

	// DefaultMaxBytes caps the size of a fetched document.
	DefaultMaxBytes = 10 << 20
)

// Config holds svgtint settings.
type Config struct {
	// Timeout bounds a single document fetch.
	Timeout time.Duration

	// CacheDir is where fetched documents are cached. Empty disables the cache.
	CacheDir string

	// UseCache enables reads from and writes to CacheDir.
	UseCache bool

	// ClassPattern selects the stylesheet classes that are namespaced.
	ClassPattern string

	// FallbackFill is assigned to paths that have no fill and no class.
	FallbackFill string

	// ResolveNamedColours rewrites keyword colours (fill="red") to hex during collection.
	ResolveNamedColours bool

	// AllowPrivateHosts permits fetches from localhost and private networks.
	AllowPrivateHosts bool

	// MaxBytes caps the size of a fetched document.
	MaxBytes int64

	UserAgent string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timeout:             DefaultTimeout,
		ClassPattern:        DefaultClassPattern,
		FallbackFill:        DefaultFallbackFill,
		ResolveNamedColours: false,
		AllowPrivateHosts:   true,
		MaxBytes:            DefaultMaxBytes,
		UserAgent:           version.UserAgent(),
	}
}

// DefaultCacheDir returns the default cache directory path.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "svgtint", "documents"), nil
	}
	return filepath.Join(cacheDir, "svgtint", "documents"), nil
}

// FromEnv overlays SVGTINT_* environment variables onto base.
// Unset variables leave the corresponding field untouched.
func FromEnv(base Config) (Config, error) {
	return fromLookup(base, os.LookupEnv)
}

func fromLookup(base Config, lookup func(string) (string, bool)) (Config, error) {
	cfg := base

	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return base, fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		cfg.Timeout = d
	}

	if v, ok := lookup(EnvCacheDir); ok && v != "" {
		cfg.CacheDir = v
		cfg.UseCache = true
	}

	if v, ok := lookup(EnvClassPattern); ok && v != "" {
		cfg.ClassPattern = v
	}

	if v, ok := lookup(EnvFallbackFill); ok && v != "" {
		cfg.FallbackFill = v
	}

	if v, ok := lookup(EnvNamedColours); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return base, fmt.Errorf("invalid %s %q: %w", EnvNamedColours, v, err)
		}
		cfg.ResolveNamedColours = b
	}

	if v, ok := lookup(EnvAllowPrivateHosts); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return base, fmt.Errorf("invalid %s %q: %w", EnvAllowPrivateHosts, v, err)
		}
		cfg.AllowPrivateHosts = b
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", c.Timeout)
	}
	if c.MaxBytes <= 0 {
		return fmt.Errorf("max document size must be positive (got %d)", c.MaxBytes)
	}
	if _, err := c.ClassRegexp(); err != nil {
		return err
	}
	if _, ok := colour.Canonical(c.FallbackFill); !ok {
		return fmt.Errorf("fallback fill must be a #RGB or #RRGGBB colour (got %q)", c.FallbackFill)
	}
	if c.UseCache && c.CacheDir == "" {
		return fmt.Errorf("cache enabled without a cache directory")
	}
	return nil
}

// ClassRegexp compiles ClassPattern.
func (c Config) ClassRegexp() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.ClassPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid class pattern %q: %w", c.ClassPattern, err)
	}
	return re, nil
}
