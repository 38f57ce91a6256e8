// Package planet implements a client for the Planet Data API v1: searching
// the catalog, activating assets and downloading their bytes.
package planet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// DefaultThrottle is the politeness pause between successive search requests,
// independent of retry backoff.
const DefaultThrottle = 300 * time.Millisecond

// Client handles communication with the Planet Data API. Connection failures
// are retried with exponential backoff; HTTP error statuses are surfaced to
// the caller as-is.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	logger       *slog.Logger
	limiter      *rate.Limiter
	retryInitial time.Duration
}

// NewClient creates a new Data API client authenticating with apiKey.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:       slog.Default(),
		limiter:      rate.NewLimiter(rate.Every(DefaultThrottle), 1),
		retryInitial: time.Second,
	}
}

// WithLogger sets a custom logger for the client.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

// WithThrottle sets the politeness interval between search requests.
// An interval of zero disables throttling.
func (c *Client) WithThrottle(interval time.Duration) *Client {
	if interval <= 0 {
		c.limiter = nil
	} else {
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return c
}

// WithRetryInterval sets the initial connection-error backoff interval.
func (c *Client) WithRetryInterval(initial time.Duration) *Client {
	c.retryInitial = initial
	return c
}

// HasCredential reports whether the client carries an API key.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// QuickSearch posts a search request and returns the matching features.
// At most one page is returned; the provider caps it at 250 items.
func (c *Client) QuickSearch(ctx context.Context, req SearchRequest) ([]Feature, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/quick-search", payload)
	if err != nil {
		return nil, fmt.Errorf("quick-search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("quick-search returned status %d: %s", resp.StatusCode, string(body))
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return result.Features, nil
}

// Assets fetches the assets document for one catalog item.
func (c *Client) Assets(ctx context.Context, itemType, id string) (AssetMap, error) {
	url := fmt.Sprintf("%s/item-types/%s/items/%s/assets", c.baseURL, itemType, id)

	var assets AssetMap
	if err := c.GetJSON(ctx, url, &assets); err != nil {
		return nil, fmt.Errorf("failed to fetch assets for %s: %w", id, err)
	}
	return assets, nil
}

// GetJSON performs an authenticated GET and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s returned status %d: %s", url, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

// Activate issues an activation request against an asset's activation link.
// The provider answers 202 while activation is pending and 204 once active.
func (c *Client) Activate(ctx context.Context, url string) error {
	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("activation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("activation returned status %d: %s", resp.StatusCode, string(body))
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Download streams the asset at url into dir and returns the written file's
// name. The name comes from the Content-Disposition header when present,
// falling back to the last path segment of the URL.
func (c *Client) Download(ctx context.Context, url, dir string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("download returned status %d: %s", resp.StatusCode, string(body))
	}

	name := filenameFromResponse(resp)
	if name == "" {
		return "", fmt.Errorf("could not determine filename for %s", url)
	}

	dest := filepath.Join(dir, name)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", dest, err)
	}
	return name, nil
}

// filenameFromResponse extracts the download filename from the response.
func filenameFromResponse(resp *http.Response) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return path.Base(name)
			}
		}
	}
	if resp.Request != nil && resp.Request.URL != nil {
		if name := path.Base(resp.Request.URL.Path); name != "." && name != "/" {
			return name
		}
	}
	return ""
}

// do executes one HTTP request, rebuilding it on every attempt so that the
// body can be resent. Transport-level connection failures are retried with
// exponential backoff (initial 1s, doubling) until the context is cancelled;
// HTTP error statuses are returned to the caller without retry.
func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInitial
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.MaxInterval = 5 * time.Minute
	bo.MaxElapsedTime = 0

	var resp *http.Response
	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.SetBasicAuth(c.apiKey, "")
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		r, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("connection error, retrying",
				"method", method,
				"url", url,
				"error", err,
			)
			return err
		}
		resp = r
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return resp, nil
}
