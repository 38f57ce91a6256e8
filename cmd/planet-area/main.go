// planet-area prints the total geodesic footprint area of a search results
// file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rkm/planet-fetch/internal/area"
	"github.com/rkm/planet-fetch/internal/results"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s SEARCH_RESULTS_FILE.json\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(resultsPath string) error {
	f, err := results.Read(resultsPath)
	if err != nil {
		return err
	}

	var total float64
	for _, item := range f.Results {
		a, err := area.Polygon(&item.Geometry)
		if err != nil {
			return fmt.Errorf("item %s: %w", item.ID, err)
		}
		total += a
	}

	fmt.Printf("%d images\n", len(f.Results))
	fmt.Printf("Geodesic area: %.3f km^2\n", total/1e6)
	return nil
}
