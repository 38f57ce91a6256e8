// planet-search queries the imagery catalog for every item matching a query
// config and writes the result set to a results file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rkm/planet-fetch/internal/cli"
	"github.com/rkm/planet-fetch/internal/config"
	"github.com/rkm/planet-fetch/internal/planet"
	"github.com/rkm/planet-fetch/internal/results"
	"github.com/rkm/planet-fetch/internal/search"
	"github.com/rkm/planet-fetch/internal/stacexport"
)

func main() {
	stacOut := flag.Bool("stac", false, "also write the results as a STAC ItemCollection")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *stacOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-stac] CONFIG.json\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func run(configPath string, stacOut bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	cred, err := config.LoadCredential()
	if err != nil {
		return err
	}
	if err := cred.Validate(); err != nil {
		return err
	}

	logger := cli.SetupLoggerFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := planet.NewClient(cred.BaseURL, cred.APIKey, 30*time.Second).WithLogger(logger)
	searcher := search.NewSearcher(client).WithLogger(logger)

	logger.Info("starting search", "config", configPath, "item_type", cfg.ItemType)

	items, err := searcher.BuildFileList(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("images selected", "count", len(items))

	name := basename(configPath)
	out := name + "-results.json"
	if err := results.Write(out, cfg, items); err != nil {
		return err
	}
	logger.Info("wrote results", "file", out)

	if stacOut {
		collection, err := stacexport.ToItemCollection(items, cfg)
		if err != nil {
			return err
		}
		data, err := json.Marshal(collection)
		if err != nil {
			return fmt.Errorf("failed to encode STAC collection: %w", err)
		}
		stacFile := name + "-results-stac.json"
		if err := os.WriteFile(stacFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", stacFile, err)
		}
		logger.Info("wrote STAC export", "file", stacFile)
	}

	return nil
}

// basename derives the job name from the config file path.
func basename(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
