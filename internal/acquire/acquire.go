// Package acquire drives remote assets through their acquisition lifecycle:
// existence check, activation request, status polling, re-activation on
// inactive status, download, and the metadata sidecar that completes an item.
package acquire

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rkm/planet-fetch/internal/config"
	"github.com/rkm/planet-fetch/internal/planet"
)

// Asset band preference: the richest available analytic product wins.
var preferredBands = []string{"ortho_analytic_8b", "ortho_analytic_4b"}

const (
	// DefaultPollInterval is the pause between activation status polls.
	DefaultPollInterval = 10 * time.Second

	// DefaultMaxWait is the ceiling on total activation wait per asset.
	DefaultMaxWait = 900 * time.Second

	// DefaultStatusLogInterval spaces advisory status log lines so a long
	// poll loop does not flood the log.
	DefaultStatusLogInterval = time.Minute
)

// Acquirer runs the per-asset acquisition state machine. One invocation owns
// one id end-to-end; invoking it again for a completed id short-circuits on
// the existence check without any network call.
type Acquirer struct {
	client *planet.Client
	logger *slog.Logger

	// Timing knobs, defaulted to provider-friendly values. Tests compress
	// them to exercise the timeout and retry policies quickly.
	PollInterval      time.Duration
	MaxWait           time.Duration
	StatusLogInterval time.Duration
}

// NewAcquirer creates an Acquirer with default timing.
func NewAcquirer(client *planet.Client) *Acquirer {
	return &Acquirer{
		client:            client,
		logger:            slog.Default(),
		PollInterval:      DefaultPollInterval,
		MaxWait:           DefaultMaxWait,
		StatusLogInterval: DefaultStatusLogInterval,
	}
}

// WithLogger sets a custom logger for the acquirer.
func (a *Acquirer) WithLogger(logger *slog.Logger) *Acquirer {
	a.logger = logger
	return a
}

// Acquire drives one catalog item from request through activation polling to
// download of both the image and its metadata sidecar. The returned state is
// StateDone on success and StateFailed otherwise.
func (a *Acquirer) Acquire(ctx context.Context, id string, cfg *config.Config) (State, error) {
	if !a.client.HasCredential() {
		return StateFailed, config.ErrMissingAPIKey
	}

	if err := os.MkdirAll(cfg.DownloadPath, 0o755); err != nil {
		return StateFailed, fmt.Errorf("failed to create download directory: %w", err)
	}

	done, err := Exists(cfg.DownloadPath, id)
	if err != nil {
		return StateFailed, err
	}
	if done {
		a.logger.Info("already downloaded", "id", id)
		return StateDone, nil
	}
	a.logger.Info("downloading", "id", id)

	assets, err := a.client.Assets(ctx, cfg.ItemType, id)
	if err != nil {
		return StateFailed, err
	}

	band, err := selectBand(assets)
	if err != nil {
		return StateFailed, fmt.Errorf("%w: item %s", err, id)
	}

	if err := a.fetchAsset(ctx, id, band, assets[band], cfg.DownloadPath); err != nil {
		return StateFailed, err
	}

	sidecar := band + "_xml"
	meta, ok := assets[sidecar]
	if !ok {
		return StateFailed, fmt.Errorf("%w: item %s has no %s sidecar", ErrNoUsableAsset, id, sidecar)
	}
	if err := a.fetchAsset(ctx, id, sidecar, meta, cfg.DownloadPath); err != nil {
		return StateFailed, err
	}

	a.logger.Info("finished", "id", id)
	return StateDone, nil
}

// fetchAsset runs the activate/poll/download cycle for a single asset.
func (a *Acquirer) fetchAsset(ctx context.Context, id, name string, asset planet.Asset, dir string) error {
	if err := a.client.Activate(ctx, asset.Links.Activate); err != nil {
		return err
	}

	started := time.Now()
	lastLogged := time.Time{}
	retried := false

	for {
		var status planet.Asset
		if err := a.client.GetJSON(ctx, asset.Links.Self, &status); err != nil {
			return err
		}

		switch status.Status {
		case planet.StatusActive:
			a.logger.Info("asset active, downloading",
				"id", id,
				"asset", name,
				"activation_wait", time.Since(started).Round(time.Second),
			)
			file, err := a.client.Download(ctx, status.Location, dir)
			if err != nil {
				return fmt.Errorf("%w: asset %s of %s: %v", ErrDownload, name, id, err)
			}
			a.logger.Info("downloaded", "id", id, "asset", name, "file", file)
			return nil

		case planet.StatusInactive:
			if retried {
				return fmt.Errorf("%w: asset %s of %s", ErrActivationAbandoned, name, id)
			}
			retried = true
			a.logger.Warn("asset inactive, re-requesting activation", "id", id, "asset", name)
			if err := a.client.Activate(ctx, asset.Links.Activate); err != nil {
				return err
			}

		default:
			if time.Since(lastLogged) >= a.StatusLogInterval {
				a.logger.Info("asset not active yet",
					"id", id,
					"asset", name,
					"status", status.Status,
					"waited", time.Since(started).Round(time.Second),
				)
				lastLogged = time.Now()
			}
		}

		if elapsed := time.Since(started); elapsed > a.MaxWait {
			return fmt.Errorf("%w: asset %s of %s after %s", ErrActivationTimeout, name, id, elapsed.Round(time.Second))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(a.PollInterval):
		}
	}
}

// selectBand picks the richest available image band from the assets document.
func selectBand(assets planet.AssetMap) (string, error) {
	for _, band := range preferredBands {
		if _, ok := assets[band]; ok {
			return band, nil
		}
	}
	return "", ErrNoUsableAsset
}

// Exists reports whether both expected output files for id are already on
// disk: the metadata sidecar (.xml) and the image (any other extension).
// Reruns rely on this check to skip completed ids.
func Exists(dir, id string) (bool, error) {
	matches, err := filepath.Glob(filepath.Join(dir, id+"*"))
	if err != nil {
		return false, fmt.Errorf("failed to scan download directory: %w", err)
	}

	var image, metadata bool
	for _, m := range matches {
		if strings.EqualFold(filepath.Ext(m), ".xml") {
			metadata = true
		} else if filepath.Ext(m) != "" {
			image = true
		}
	}
	return image && metadata, nil
}
