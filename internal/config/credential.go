package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Credential carries the Planet API key and endpoint settings sourced from
// the process environment. It is read once at startup and shared read-only by
// all workers.
type Credential struct {
	// APIKey is the Planet bearer credential. Its absence is a fatal
	// configuration error for any operation needing network access.
	APIKey string `env:"PL_API_KEY"`

	// BaseURL is the Data API root, overridable for testing.
	BaseURL string `env:"PLANET_API_URL" envDefault:"https://api.planet.com/data/v1"`
}

// LoadCredential parses credential settings from environment variables.
// It does not fail when the key is absent; callers validate at the top of
// each network-facing entry point via Validate.
func LoadCredential() (*Credential, error) {
	cred := &Credential{}
	if err := env.Parse(cred); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cred, nil
}

// Validate reports ErrMissingAPIKey if no API key is configured.
func (c *Credential) Validate() error {
	if c == nil || c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
