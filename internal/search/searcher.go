// Package search walks an unbounded date range and produces the complete
// result set despite the provider's fixed per-query result cap, by
// recursively bisecting the search window whenever a page comes back full.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rkm/planet-fetch/internal/config"
	"github.com/rkm/planet-fetch/internal/filter"
	"github.com/rkm/planet-fetch/internal/planet"
)

// ErrRangeTooSmall indicates the bisection degenerated below the minimum
// window, likely pathological input. It is fatal for that search invocation.
var ErrRangeTooSmall = errors.New("search interval got too small")

const (
	// DefaultPageCap is the provider's per-query result cap. A page of this
	// size means the window may be incomplete and must be bisected.
	DefaultPageCap = 250

	// DefaultMinWindow is the floor below which the recursion refuses to
	// narrow further. It is the only bound on recursion depth.
	DefaultMinWindow = 60 * time.Second
)

// Searcher drives the adaptive search partitioning against one client.
type Searcher struct {
	client *planet.Client
	logger *slog.Logger

	// PageCap and MinWindow default to the provider values and exist as
	// fields so tests can exercise the recursion cheaply.
	PageCap   int
	MinWindow time.Duration
}

// NewSearcher creates a Searcher with provider defaults.
func NewSearcher(client *planet.Client) *Searcher {
	return &Searcher{
		client:    client,
		logger:    slog.Default(),
		PageCap:   DefaultPageCap,
		MinWindow: DefaultMinWindow,
	}
}

// WithLogger sets a custom logger for the searcher.
func (s *Searcher) WithLogger(logger *slog.Logger) *Searcher {
	s.logger = logger
	return s
}

// BuildFileList searches the configured time range and returns every matching
// catalog item in chronological window order. Duplicate ids across adjacent
// windows are possible when the provider treats both boundaries as inclusive;
// they are deliberately not removed here.
func (s *Searcher) BuildFileList(ctx context.Context, cfg *config.Config) ([]planet.Feature, error) {
	if !s.client.HasCredential() {
		return nil, config.ErrMissingAPIKey
	}

	start, end, err := cfg.Window()
	if err != nil {
		return nil, err
	}

	return s.search(ctx, cfg, Window{Start: start, End: end}, 1)
}

// search handles one window, bisecting and recursing when the page cap is
// reached. The two halves are independent and evaluated in parallel; the
// returned order is always first half before second half, regardless of
// completion order.
func (s *Searcher) search(ctx context.Context, cfg *config.Config, w Window, depth int) ([]planet.Feature, error) {
	if w.Duration() < s.MinWindow {
		return nil, fmt.Errorf("%w: %s", ErrRangeTooSmall, w)
	}

	items, err := s.client.QuickSearch(ctx, filter.Request(cfg, w.Start, w.End))
	if err != nil {
		return nil, err
	}

	s.logger.Info("searched period",
		"window", w.String(),
		"count", len(items),
		"depth", depth,
	)

	if len(items) < s.PageCap {
		return items, nil
	}

	firstWindow, secondWindow := w.Bisect()

	var first, second []planet.Feature
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		first, err = s.search(gctx, cfg, firstWindow, depth+1)
		return err
	})
	g.Go(func() error {
		var err error
		second, err = s.search(gctx, cfg, secondWindow, depth+1)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(first, second...), nil
}
