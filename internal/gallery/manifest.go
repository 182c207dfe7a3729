package gallery

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
)

// idPattern restricts entry ids to values usable as class and id prefixes.
var idPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Entry is one document listed in a gallery manifest.
type Entry struct {
	ID      string  `json:"id"`
	Type    string  `json:"type,omitempty"`
	Details Details `json:"details"`
	Preview string  `json:"preview,omitempty"`
}

// Details locates the document of an Entry.
type Details struct {
	Src string `json:"src"`
}

// ParseManifest decodes a JSON array of entries and validates it.
func ParseManifest(r io.Reader) ([]Entry, error) {
	var entries []Entry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if err := ValidateManifest(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReadManifest reads a manifest file. Relative local sources are resolved against
// the manifest's directory.
func ReadManifest(path string) ([]Entry, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	entries, err := ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range entries {
		src := entries[i].Details.Src
		if u, err := url.Parse(src); err == nil && len(u.Scheme) > 1 {
			continue
		}
		if !filepath.IsAbs(src) {
			entries[i].Details.Src = filepath.Join(dir, src)
		}
	}
	return entries, nil
}

// ValidateManifest checks that every entry has a usable, unique id and a source.
func ValidateManifest(entries []Entry) error {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if !idPattern.MatchString(e.ID) {
			return fmt.Errorf("entry %d: invalid id %q", i, e.ID)
		}
		if seen[e.ID] {
			return fmt.Errorf("entry %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
		if e.Details.Src == "" {
			return fmt.Errorf("entry %q: missing details.src", e.ID)
		}
	}
	return nil
}
