// planet-download acquires the assets for every item in a search results
// file, fanning the work out across a bounded worker pool. Completed items
// are skipped, so rerunning after a partial failure resumes where it left
// off.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rkm/planet-fetch/internal/acquire"
	"github.com/rkm/planet-fetch/internal/cli"
	"github.com/rkm/planet-fetch/internal/config"
	"github.com/rkm/planet-fetch/internal/planet"
	"github.com/rkm/planet-fetch/internal/results"
)

func main() {
	randomize := flag.Bool("r", false, "randomize download order")
	workers := flag.Int("workers", acquire.DefaultWorkers, "number of concurrent downloads")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *workers, *randomize); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-r] [-workers N] SEARCH_RESULTS_FILE.json\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func run(resultsPath string, workers int, randomize bool) error {
	f, err := results.Read(resultsPath)
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

	// No client timeout: activation polls block for minutes and image
	// downloads can be large.
	client := planet.NewClient(cred.BaseURL, cred.APIKey, 0).WithLogger(logger)
	acquirer := acquire.NewAcquirer(client).WithLogger(logger)

	ids := f.IDs()
	logger.Info("starting downloads",
		"results", resultsPath,
		"items", len(ids),
		"workers", workers,
		"randomize", randomize,
	)

	res := acquirer.DownloadAll(ctx, ids, f.Config, workers, randomize)

	failed := acquire.Failed(res)
	logger.Info("downloads finished", "items", len(res), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d items failed", failed, len(res))
	}
	return nil
}
