// Package config provides configuration management for the Planet fetch tools:
// the query config file that drives a search, and the API credential sourced
// from the process environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrMissingAPIKey indicates that no Planet API key is available. Operations
// that touch the network treat this as fatal and do not retry.
var ErrMissingAPIKey = errors.New("planet API key not found")

// Config holds one search/download job description, loaded from a JSON config
// file. It is immutable once loaded and is the sole required input for both
// the search and download stages. The json tags let a Config round-trip
// through results files unchanged.
type Config struct {
	ItemType string `koanf:"item_type" json:"item_type"`

	// Bounding box corners in degrees.
	AreaLat1 float64 `koanf:"area_lat1" json:"area_lat1"`
	AreaLat2 float64 `koanf:"area_lat2" json:"area_lat2"`
	AreaLon1 float64 `koanf:"area_lon1" json:"area_lon1"`
	AreaLon2 float64 `koanf:"area_lon2" json:"area_lon2"`

	// StartTime and EndTime are date-time component arrays, at minimum
	// [year, month, day], optionally followed by hour, minute, second.
	StartTime []int `koanf:"starttime" json:"starttime"`
	EndTime   []int `koanf:"endtime" json:"endtime"`

	// Filters is an ordered sequence of provider filter objects, each tagged
	// by a "type" discriminator. They are passed through to the API verbatim.
	Filters []map[string]any `koanf:"filters" json:"filters"`

	DownloadPath string `koanf:"download_path" json:"download_path"`
	Name         string `koanf:"name" json:"name"`
	Description  string `koanf:"description" json:"description"`
}

// Load reads and validates a query config from a JSON file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is complete enough to run a search.
func (c *Config) Validate() error {
	if c.ItemType == "" {
		return fmt.Errorf("item_type is required")
	}

	if len(c.StartTime) < 3 {
		return fmt.Errorf("starttime must have at least [year, month, day], got %d components", len(c.StartTime))
	}

	if len(c.EndTime) < 3 {
		return fmt.Errorf("endtime must have at least [year, month, day], got %d components", len(c.EndTime))
	}

	start, err := timeFromComponents(c.StartTime)
	if err != nil {
		return fmt.Errorf("invalid starttime: %w", err)
	}

	end, err := timeFromComponents(c.EndTime)
	if err != nil {
		return fmt.Errorf("invalid endtime: %w", err)
	}

	if !end.After(start) {
		return fmt.Errorf("endtime %s must be after starttime %s", end, start)
	}

	if c.DownloadPath == "" {
		return fmt.Errorf("download_path is required")
	}

	return nil
}

// Window returns the configured search time range as [start, end).
func (c *Config) Window() (time.Time, time.Time, error) {
	start, err := timeFromComponents(c.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid starttime: %w", err)
	}
	end, err := timeFromComponents(c.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endtime: %w", err)
	}
	return start, end, nil
}

// timeFromComponents builds a UTC time from [year, month, day, hour, minute,
// second]; trailing components may be omitted.
func timeFromComponents(parts []int) (time.Time, error) {
	if len(parts) < 3 || len(parts) > 6 {
		return time.Time{}, fmt.Errorf("expected 3 to 6 date-time components, got %d", len(parts))
	}
	padded := make([]int, 6)
	copy(padded, parts)
	if padded[1] < 1 || padded[1] > 12 {
		return time.Time{}, fmt.Errorf("month out of range: %d", padded[1])
	}
	return time.Date(padded[0], time.Month(padded[1]), padded[2], padded[3], padded[4], padded[5], 0, time.UTC), nil
}
