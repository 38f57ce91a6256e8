// Package stacexport converts search results into STAC items so the result
// set can feed STAC-aware tooling.
package stacexport

import (
	"fmt"

	"github.com/planetlabs/go-stac"

	"github.com/rkm/planet-fetch/internal/config"
	"github.com/rkm/planet-fetch/internal/planet"
	"github.com/rkm/planet-fetch/internal/results"
)

// stacVersion is the STAC spec version stamped on exported items.
const stacVersion = "1.0.0"

// ItemCollection is a GeoJSON FeatureCollection of STAC items.
type ItemCollection struct {
	Type     string       `json:"type"`
	Features []*stac.Item `json:"features"`
}

// ToItem converts one catalog feature to a STAC item. The configured item
// type becomes the collection id.
func ToItem(feature planet.Feature, cfg *config.Config) (*stac.Item, error) {
	if feature.ID == "" {
		return nil, fmt.Errorf("feature has no id")
	}

	item := &stac.Item{
		Version:    stacVersion,
		Id:         feature.ID,
		Collection: cfg.ItemType,
		Properties: make(map[string]any),
		Assets:     make(map[string]*stac.Asset),
		Links:      make([]*stac.Link, 0),
	}

	item.Geometry = feature.Geometry

	acquired, err := results.ParseAcquired(feature.Properties.Acquired)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", feature.ID, err)
	}
	item.Properties["datetime"] = acquired
	item.Properties["pl:item_type"] = cfg.ItemType

	return item, nil
}

// ToItemCollection converts a result set to a STAC ItemCollection, preserving
// result order.
func ToItemCollection(features []planet.Feature, cfg *config.Config) (*ItemCollection, error) {
	items := make([]*stac.Item, 0, len(features))
	for _, f := range features {
		item, err := ToItem(f, cfg)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &ItemCollection{Type: "FeatureCollection", Features: items}, nil
}
