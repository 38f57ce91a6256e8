// Package filter composes Planet Data API filter expressions: the bounding
// box geometry filter, the date range clause for a search window, and the
// combined AndFilter a search request carries.
package filter

import (
	"time"

	"github.com/rkm/planet-fetch/internal/config"
	"github.com/rkm/planet-fetch/internal/planet"
)

// geometryFilterType is the discriminator the provider uses for spatial
// clauses. User-supplied filters with this type suppress the config-derived
// bounding box clause.
const geometryFilterType = "GeometryFilter"

// dateFormat is the second-precision UTC format the date range clause uses.
const dateFormat = "2006-01-02T15:04:05Z"

// Geometry builds a GeometryFilter covering the lat/lon bounding box. The
// polygon ring runs lon1/lat1 -> lon1/lat2 -> lon2/lat2 -> lon2/lat1 and
// closes on the first vertex.
func Geometry(lat1, lat2, lon1, lon2 float64) map[string]any {
	return map[string]any{
		"type":       geometryFilterType,
		"field_name": "geometry",
		"config": map[string]any{
			"type": "Polygon",
			"coordinates": [][][]float64{
				{
					{lon1, lat1},
					{lon1, lat2},
					{lon2, lat2},
					{lon2, lat1},
					{lon1, lat1},
				},
			},
		},
	}
}

// DateRange builds a DateRangeFilter on the acquisition timestamp covering
// [start, end], both bounds inclusive.
func DateRange(start, end time.Time) map[string]any {
	return map[string]any{
		"type":       "DateRangeFilter",
		"field_name": "acquired",
		"config": map[string]any{
			"gte": start.UTC().Format(dateFormat),
			"lte": end.UTC().Format(dateFormat),
		},
	}
}

// Compose assembles the combined filter for one search window: the date range
// clause, every configured filter verbatim, and the bounding box geometry
// clause unless the configured filters already contain one (first match
// wins, so a second geometry clause is never appended). Pure, no I/O.
func Compose(cfg *config.Config, start, end time.Time) map[string]any {
	clauses := make([]any, 0, len(cfg.Filters)+2)
	clauses = append(clauses, DateRange(start, end))
	for _, f := range cfg.Filters {
		clauses = append(clauses, f)
	}

	if !hasGeometryFilter(cfg.Filters) {
		clauses = append(clauses, Geometry(cfg.AreaLat1, cfg.AreaLat2, cfg.AreaLon1, cfg.AreaLon2))
	}

	return map[string]any{
		"type":   "AndFilter",
		"config": clauses,
	}
}

// Request wraps a composed filter with the item-type selector, yielding the
// full quick-search request body.
func Request(cfg *config.Config, start, end time.Time) planet.SearchRequest {
	return planet.SearchRequest{
		ItemTypes: []string{cfg.ItemType},
		Filter:    Compose(cfg, start, end),
	}
}

func hasGeometryFilter(filters []map[string]any) bool {
	for _, f := range filters {
		if t, ok := f["type"].(string); ok && t == geometryFilterType {
			return true
		}
	}
	return false
}
