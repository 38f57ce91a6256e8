// Package results reads and writes search results files: the JSON document
// pairing a query config with the catalog items a search returned.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rkm/planet-fetch/internal/config"
	"github.com/rkm/planet-fetch/internal/planet"
)

// File is the on-disk search results document. Carrying the config alongside
// the results lets the download stage run from the file alone.
type File struct {
	Config  *config.Config   `json:"config"`
	Results []planet.Feature `json:"results"`
}

// Write stores a results file at path.
func Write(path string, cfg *config.Config, items []planet.Feature) error {
	data, err := json.Marshal(File{Config: cfg, Results: items})
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write results file %s: %w", path, err)
	}
	return nil
}

// Read loads a results file from path.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file %s: %w", path, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse results file %s: %w", path, err)
	}
	if f.Config == nil {
		return nil, fmt.Errorf("results file %s has no config", path)
	}
	return &f, nil
}

// IDs returns the item ids in result order.
func (f *File) IDs() []string {
	ids := make([]string, len(f.Results))
	for i, r := range f.Results {
		ids[i] = r.ID
	}
	return ids
}

// Acquisition timestamp formats observed in provider responses. The usual
// form carries fractional seconds and a trailing Z.
var acquiredFormats = []string{
	"2006-01-02T15:04:05.999999Z",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseAcquired parses an acquisition timestamp string into a UTC time.
func ParseAcquired(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty acquisition time")
	}

	var lastErr error
	for _, format := range acquiredFormats {
		t, err := time.Parse(format, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("failed to parse acquisition time %q: %w", s, lastErr)
}
