package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validConfigJSON = `{
	"item_type": "PSScene",
	"area_lat1": 54.0,
	"area_lat2": 55.0,
	"area_lon1": 10.0,
	"area_lon2": 11.0,
	"starttime": [2024, 1, 1],
	"endtime": [2024, 2, 1, 12, 30],
	"filters": [
		{"type": "RangeFilter", "field_name": "cloud_cover", "config": {"lte": 0.1}}
	],
	"download_path": "/data/planet",
	"name": "test-job",
	"description": "Test job"
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfigJSON))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ItemType != "PSScene" {
		t.Errorf("Unexpected item type: %s", cfg.ItemType)
	}
	if cfg.AreaLat1 != 54.0 || cfg.AreaLon2 != 11.0 {
		t.Errorf("Bounding box did not load: %+v", cfg)
	}
	if len(cfg.Filters) != 1 || cfg.Filters[0]["type"] != "RangeFilter" {
		t.Errorf("Filters did not load: %v", cfg.Filters)
	}

	start, end, err := cfg.Window()
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if !start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected start: %s", start)
	}
	if !end.Equal(time.Date(2024, 2, 1, 12, 30, 0, 0, time.UTC)) {
		t.Errorf("Unexpected end: %s", end)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing item_type", func(c *Config) { c.ItemType = "" }},
		{"short starttime", func(c *Config) { c.StartTime = []int{2024} }},
		{"short endtime", func(c *Config) { c.EndTime = []int{2024, 1} }},
		{"end before start", func(c *Config) { c.EndTime = []int{2023, 1, 1} }},
		{"bad month", func(c *Config) { c.StartTime = []int{2024, 13, 1} }},
		{"missing download_path", func(c *Config) { c.DownloadPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				ItemType:     "PSScene",
				StartTime:    []int{2024, 1, 1},
				EndTime:      []int{2024, 2, 1},
				DownloadPath: "/data",
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestCredential(t *testing.T) {
	// t.Setenv registers the restore; unset so envDefault values apply.
	t.Setenv("PL_API_KEY", "")
	t.Setenv("PLANET_API_URL", "")
	os.Unsetenv("PL_API_KEY")
	os.Unsetenv("PLANET_API_URL")

	cred, err := LoadCredential()
	if err != nil {
		t.Fatalf("LoadCredential failed: %v", err)
	}
	if err := cred.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey, got %v", err)
	}

	t.Setenv("PL_API_KEY", "secret")
	cred, err = LoadCredential()
	if err != nil {
		t.Fatalf("LoadCredential failed: %v", err)
	}
	if err := cred.Validate(); err != nil {
		t.Errorf("Expected valid credential, got %v", err)
	}
	if cred.APIKey != "secret" {
		t.Errorf("Unexpected key: %s", cred.APIKey)
	}
	if cred.BaseURL != "https://api.planet.com/data/v1" {
		t.Errorf("Unexpected default base URL: %s", cred.BaseURL)
	}
}
